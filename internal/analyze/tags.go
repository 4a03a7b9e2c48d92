package analyze

import (
	"reflect"
	"strings"

	"schema-generator/internal/match"
)

// TagKey is the struct tag key read by the extractor.
//
//	Hp    int      `schema:"range=[1,9999];required"`
//	Drops []Drop   `schema:"index=itemId"`
//	Kind  string   `schema:"const=boss"`
//	Note  string   `schema:"name=remark;optional"`
//	Debug string   `schema:"-"`
const TagKey = "schema"

// Validator tag keys carried into the emitted type string.
const (
	TagRange    = "range"
	TagSize     = "size"
	TagRequired = "required"
	TagSet      = "set"
	TagIndex    = "index"
	TagRef      = "ref"
)

// Behavior keys consumed by the extractor itself.
const (
	tagName     = "name"
	tagOptional = "optional"
	tagConst    = "const"
)

// fieldTag is the parsed form of a `schema:"..."` struct tag.
type fieldTag struct {
	Skip       bool
	Name       string
	Optional   bool
	Const      string
	HasConst   bool
	Validators []Tag
}

// parseFieldTag splits the schema tag on ';'. Commas are left alone because
// range and size values such as [1,10] contain them.
func parseFieldTag(tag reflect.StructTag) fieldTag {
	var ft fieldTag

	raw, ok := tag.Lookup(TagKey)
	if !ok {
		return ft
	}

	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if part == "-" {
			ft.Skip = true
			continue
		}

		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case tagName:
			ft.Name = value
		case tagOptional:
			ft.Optional = true
		case tagConst:
			ft.Const = value
			ft.HasConst = true
		default:
			ft.Validators = append(ft.Validators, Tag{Key: key, Value: value})
		}
	}

	return ft
}

// jsonTag returns the json name and whether omitempty is set.
func jsonTag(tag reflect.StructTag) (name string, omitEmpty bool) {
	raw := tag.Get("json")
	if raw == "" {
		return "", false
	}

	name, opts, _ := strings.Cut(raw, ",")
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" || o == "omitzero" {
			omitEmpty = true
		}
	}

	return name, omitEmpty
}

// fieldName picks the schema name of a field: explicit schema name, then the
// json name, then the lowerCamel Go name.
func fieldName(goName string, tag reflect.StructTag, ft fieldTag) string {
	if ft.Name != "" {
		return ft.Name
	}

	if name, _ := jsonTag(tag); name != "" && name != "-" {
		return name
	}

	return match.LowerCamel(goName)
}
