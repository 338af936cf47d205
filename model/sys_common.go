package model

type CommonModel struct {
	RuntimePath string
}

type APPModel struct {
	LogPath      string
	LogSaveName  string
	LogFileExt   string
	UserDataPath string
	DBPath       string `validate:"required"`
	HTTPAddr     string `validate:"required,hostname_port"`
	RateLimit    int    `validate:"gte=0"`
}

type JWTModel struct {
	Secret    string
	Issuer    string
	Expire    int `validate:"gt=0"`
	IssueCode string
}

// DocModel holds the properties of the [doc] section used to build the API
// documentation once at startup.
type DocModel struct {
	Enable              bool
	BasePath            string
	Title               string
	Description         string
	DescriptionFontSize string
	DescriptionColor    string
	Name                string
	URL                 string `validate:"omitempty,url"`
	Email               string `validate:"omitempty,email"`
	TermsOfServiceURL   string `validate:"omitempty,url"`
	License             string
	LicenseURL          string `validate:"omitempty,url"`
	Version             string
	SecurityPathRegex   string
}
