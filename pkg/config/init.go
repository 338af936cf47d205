package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/vihackerframework/vihacker-go/model"
	"gopkg.in/ini.v1"
)

const VIHACKERCONFIGURL = "/etc/vihacker/vihacker.conf"

// models with default values

var CommonInfo = &model.CommonModel{
	RuntimePath: "/var/run/vihacker",
}

var AppInfo = &model.APPModel{
	DBPath:       "/var/lib/vihacker",
	UserDataPath: "/var/lib/vihacker",
	LogPath:      "/var/log/vihacker",
	LogSaveName:  "vihacker",
	LogFileExt:   "log",
	HTTPAddr:     "127.0.0.1:8080",
	RateLimit:    50,
}

var JWTInfo = &model.JWTModel{
	Issuer: "vihacker",
	Expire: 3,
}

var DocInfo = &model.DocModel{
	Enable:              true,
	BasePath:            "/",
	Title:               "ViHacker API",
	Description:         "ViHacker service API",
	DescriptionFontSize: "14",
	DescriptionColor:    "#666666",
	Version:             "1.0.0",
	SecurityPathRegex:   "/.*",
}

var Cfg *ini.File

var validate = validator.New(validator.WithRequiredStructEnabled())

// InitSetup loads the config file and exits the process when it cannot be
// read or fails validation. An empty path falls back to VIHACKERCONFIGURL,
// which may be absent.
func InitSetup(config string) {
	configDir := VIHACKERCONFIGURL
	if len(config) > 0 {
		configDir = config
	} else if _, err := os.Stat(configDir); os.IsNotExist(err) {
		configDir = ""
	}

	if err := Load(configDir); err != nil {
		fmt.Printf("Fail to load config: %v\n", err)
		os.Exit(1)
	}
}

// Load maps the [common], [app], [jwt] and [doc] sections of source onto the
// package models and validates the result. An empty source keeps the defaults.
func Load(source string) error {
	if source != "" {
		var err error
		Cfg, err = ini.Load(source)
		if err != nil {
			return fmt.Errorf("read %s: %w", source, err)
		}

		for section, v := range map[string]interface{}{
			"common": CommonInfo,
			"app":    AppInfo,
			"jwt":    JWTInfo,
			"doc":    DocInfo,
		} {
			if err := mapTo(section, v); err != nil {
				return err
			}
		}
	}

	for _, v := range []interface{}{AppInfo, JWTInfo, DocInfo} {
		if err := validate.Struct(v); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

func mapTo(section string, v interface{}) error {
	if err := Cfg.Section(section).MapTo(v); err != nil {
		return fmt.Errorf("Cfg.MapTo %s err: %w", section, err)
	}
	return nil
}
