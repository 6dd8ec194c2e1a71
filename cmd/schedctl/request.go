package main

import (
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arnavshah/staff-scheduler-api/pkg/models"
)

// loadRequest reads a scheduling request from a JSON or YAML file. Field names
// match the HTTP API.
func loadRequest(path string) (*models.ScheduleRequest, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported request format: %s", filepath.Ext(path))
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var req models.ScheduleRequest
	conf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: wholeNumberHook,
			Result:     &req,
			TagName:    "json",
		},
	}
	if err := k.UnmarshalWithConf("", &req, conf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if !k.Exists("demand") {
		return nil, fmt.Errorf("%s: demand is required", path)
	}
	for i, s := range req.Staff {
		if s.ID == "" {
			return nil, fmt.Errorf("%s: staff[%d] has no id", path, i)
		}
	}
	return &req, nil
}

// wholeNumberHook rejects fractional or non-numeric values for integer fields
// instead of truncating them, matching the HTTP binder.
func wholeNumberHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%v is not a whole number", data)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, fmt.Errorf("%v is not a number", data)
	}
	return data, nil
}
