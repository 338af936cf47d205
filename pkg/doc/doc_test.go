package doc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vihackerframework/vihacker-go/model"
)

func testProps() model.DocModel {
	return model.DocModel{
		Enable:              true,
		BasePath:            "/v1",
		Title:               "Event Service",
		Description:         "events and users",
		DescriptionFontSize: "16",
		DescriptionColor:    "#42b983",
		Name:                "Ranger",
		URL:                 "https://vihacker.top",
		Email:               "wilton.icp@gmail.com",
		TermsOfServiceURL:   "https://vihacker.top/terms",
		License:             "Apache 2.0",
		LicenseURL:          "https://www.apache.org/licenses/LICENSE-2.0",
		Version:             "2.1.0",
		SecurityPathRegex:   "/v1/events.*",
	}
}

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	noop := func(c *gin.Context) {}
	r.GET("/v1/events", noop)
	r.POST("/v1/events/batch", noop)
	r.GET("/v1/events/:uuid", noop)
	r.DELETE("/v1/events/:uuid", noop)
	r.POST("/v1/users/token", noop)
	r.GET("/static/*filepath", noop)
	return r
}

func TestBuildInfo(t *testing.T) {
	doc, err := Build(testProps(), nil)
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Event Service", doc.Info.Title)
	assert.Equal(t, "<div style='font-size:16px;color:#42b983;'>events and users</div>", doc.Info.Description)
	assert.Equal(t, "2.1.0", doc.Info.Version)
	assert.Equal(t, "https://vihacker.top/terms", doc.Info.TermsOfService)
	assert.Equal(t, "Ranger", doc.Info.Contact.Name)
	assert.Equal(t, "wilton.icp@gmail.com", doc.Info.Contact.Email)
	assert.Equal(t, "Apache 2.0", doc.Info.License.Name)

	scheme := doc.Components.SecuritySchemes[SecuritySchemeName].Value
	assert.Equal(t, "apiKey", scheme.Type)
	assert.Equal(t, "Authorization", scheme.Name)
	assert.Equal(t, "header", scheme.In)
}

func TestBuildPaths(t *testing.T) {
	doc, err := Build(testProps(), testEngine().Routes())
	require.NoError(t, err)

	assert.Nil(t, doc.Paths.Value("/static/{filepath}"), "routes outside the base path are skipped")

	item := doc.Paths.Value("/v1/events/{uuid}")
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	require.NotNil(t, item.Delete)
	assert.Equal(t, "get_v1_events_uuid", item.Get.OperationID)
	assert.Equal(t, []string{"events"}, item.Get.Tags)
	require.Len(t, item.Get.Parameters, 1)
	assert.Equal(t, "uuid", item.Get.Parameters[0].Value.Name)
	assert.Equal(t, "path", item.Get.Parameters[0].Value.In)

	require.NotNil(t, item.Get.Security)
	assert.Contains(t, (*item.Get.Security)[0], SecuritySchemeName)

	token := doc.Paths.Value("/v1/users/token")
	require.NotNil(t, token)
	assert.Nil(t, token.Post.Security, "paths outside the security regex stay open")
}

func TestBuildSecurityMatchesDocumentedPath(t *testing.T) {
	props := testProps()
	props.SecurityPathRegex = `/v1/events/\{uuid\}`

	doc, err := Build(props, testEngine().Routes())
	require.NoError(t, err)

	item := doc.Paths.Value("/v1/events/{uuid}")
	require.NotNil(t, item)
	require.NotNil(t, item.Get.Security)
	assert.Nil(t, doc.Paths.Value("/v1/events").Get.Security)
}

func TestBuildDefaultsSecureEverything(t *testing.T) {
	props := testProps()
	props.BasePath = ""
	props.SecurityPathRegex = ""

	doc, err := Build(props, testEngine().Routes())
	require.NoError(t, err)

	for p, item := range doc.Paths.Map() {
		for _, op := range item.Operations() {
			require.NotNil(t, op.Security, p)
		}
	}
	assert.NotNil(t, doc.Paths.Value("/static/{filepath}"))
}

func TestBuildInvalidRegex(t *testing.T) {
	props := testProps()
	props.SecurityPathRegex = "(["
	_, err := Build(props, nil)
	assert.Error(t, err)
}

func TestRegisterServesDocs(t *testing.T) {
	r := testEngine()
	require.NoError(t, Register(r, testProps()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, V3DocPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var v3 map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v3))
	assert.Equal(t, "3.0.3", v3["openapi"])
	assert.NotContains(t, v3["paths"], V3DocPath)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, V2DocPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var v2 map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v2))
	assert.Equal(t, "2.0", v2["swagger"])
	assert.Contains(t, v2["securityDefinitions"], SecuritySchemeName)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, UIDocPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Event Service</title>")
}

func TestRegisterDisabled(t *testing.T) {
	r := testEngine()
	props := testProps()
	props.Enable = false
	require.NoError(t, Register(r, props))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, V3DocPath, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConvertPath(t *testing.T) {
	p, params := convertPath("/v1/events/:uuid/files/*name")
	assert.Equal(t, "/v1/events/{uuid}/files/{name}", p)
	assert.Equal(t, []string{"uuid", "name"}, params)
}
