// Package doc builds the OpenAPI document of a gin engine from the [doc]
// properties and serves it together with a swagger-ui page.
package doc

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/vihackerframework/vihacker-go/model"
)

const (
	SecuritySchemeName = "Bearer"

	V3DocPath  = "/v3/api-docs"
	V2DocPath  = "/v2/api-docs"
	UIDocPath  = "/doc.html"
	openAPIVer = "3.0.3"
)

//go:embed assets/doc.html
var docHTML string

var docTemplate = template.Must(template.New("doc").Parse(docHTML))

// Defaults fills empty properties with their default values.
func Defaults(props model.DocModel) model.DocModel {
	if props.BasePath == "" {
		props.BasePath = "/"
	}
	if props.SecurityPathRegex == "" {
		props.SecurityPathRegex = "/.*"
	}
	if props.DescriptionFontSize == "" {
		props.DescriptionFontSize = "14"
	}
	if props.DescriptionColor == "" {
		props.DescriptionColor = "#666666"
	}
	if props.Version == "" {
		props.Version = "1.0.0"
	}
	return props
}

// Register builds the document for the routes already on engine and mounts
// the documentation endpoints. It does nothing when props.Enable is false.
func Register(engine *gin.Engine, props model.DocModel) error {
	if !props.Enable {
		return nil
	}

	doc, err := Build(props, engine.Routes())
	if err != nil {
		return err
	}

	v3, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}

	swagger, err := openapi2conv.FromV3(doc)
	if err != nil {
		return fmt.Errorf("convert openapi document to swagger 2: %w", err)
	}
	v2, err := sonic.Marshal(swagger)
	if err != nil {
		return fmt.Errorf("marshal swagger document: %w", err)
	}

	var page strings.Builder
	if err := docTemplate.Execute(&page, map[string]string{"Title": doc.Info.Title, "SpecURL": V3DocPath}); err != nil {
		return fmt.Errorf("render doc page: %w", err)
	}
	html := page.String()

	engine.GET(V3DocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", v3)
	})
	engine.GET(V2DocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", v2)
	})
	engine.GET(UIDocPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	})
	return nil
}

// Build returns the OpenAPI document for routes under props.BasePath.
// Operations whose path matches props.SecurityPathRegex require the Bearer
// scheme.
func Build(props model.DocModel, routes gin.RoutesInfo) (*openapi3.T, error) {
	props = Defaults(props)

	// the whole path has to match
	secured, err := regexp.Compile("^(?:" + props.SecurityPathRegex + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid security path regex %q: %w", props.SecurityPathRegex, err)
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVer,
		Info:    apiInfo(props),
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				SecuritySchemeName: &openapi3.SecuritySchemeRef{Value: apiKey()},
			},
		},
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	for _, route := range routes {
		if !selected(props.BasePath, route.Path) {
			continue
		}
		docPath, params := convertPath(route.Path)

		op := openapi3.NewOperation()
		op.OperationID = operationID(route.Method, route.Path)
		op.Summary = path.Base(route.Handler)
		if tag := firstSegment(props.BasePath, route.Path); tag != "" {
			op.Tags = []string{tag}
		}
		for _, name := range params {
			op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
		}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("result envelope"),
			}),
		)
		if secured.MatchString(docPath) {
			op.Security = &openapi3.SecurityRequirements{defaultAuth()}
		}

		item := doc.Paths.Value(docPath)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(docPath, item)
		}
		item.SetOperation(route.Method, op)
	}

	return doc, nil
}

func apiInfo(props model.DocModel) *openapi3.Info {
	description := fmt.Sprintf("<div style='font-size:%spx;color:%s;'>%s</div>",
		props.DescriptionFontSize, props.DescriptionColor, props.Description)

	info := &openapi3.Info{
		Title:          props.Title,
		Description:    description,
		TermsOfService: props.TermsOfServiceURL,
		Version:        props.Version,
		Contact: &openapi3.Contact{
			Name:  props.Name,
			URL:   props.URL,
			Email: props.Email,
		},
	}
	if props.License != "" || props.LicenseURL != "" {
		info.License = &openapi3.License{Name: props.License, URL: props.LicenseURL}
	}
	return info
}

func apiKey() *openapi3.SecurityScheme {
	return &openapi3.SecurityScheme{
		Type: "apiKey",
		Name: "Authorization",
		In:   "header",
	}
}

func defaultAuth() openapi3.SecurityRequirement {
	return openapi3.NewSecurityRequirement().Authenticate(SecuritySchemeName)
}

func selected(basePath, routePath string) bool {
	switch routePath {
	case V3DocPath, V2DocPath, UIDocPath:
		return false
	}
	if basePath == "/" {
		return true
	}
	base := strings.TrimSuffix(basePath, "/")
	return routePath == base || strings.HasPrefix(routePath, base+"/")
}

// convertPath turns gin's ":id" and "*rest" segments into "{id}" and
// "{rest}" and returns the parameter names in order.
func convertPath(ginPath string) (string, []string) {
	segments := strings.Split(ginPath, "/")
	var params []string
	for i, seg := range segments {
		if len(seg) > 1 && (seg[0] == ':' || seg[0] == '*') {
			name := seg[1:]
			params = append(params, name)
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/"), params
}

func operationID(method, ginPath string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(ginPath, "/") {
		seg = strings.TrimLeft(seg, ":*")
		if seg == "" {
			continue
		}
		b.WriteString("_")
		b.WriteString(seg)
	}
	return b.String()
}

func firstSegment(basePath, routePath string) string {
	rest := strings.TrimPrefix(routePath, strings.TrimSuffix(basePath, "/"))
	for _, seg := range strings.Split(rest, "/") {
		if seg != "" && seg[0] != ':' && seg[0] != '*' {
			return seg
		}
	}
	return ""
}
