package utils

import (
	"fmt"
	"reflect"
	"unicode"

	log "github.com/sirupsen/logrus"
)

// PrintConfig logs every leaf field of the loaded configuration.
// Values of fields tagged `sensitive:"true"` are masked.
func PrintConfig(config interface{}) {
	log.Info("Loaded configuration:")
	logConfigFields("", reflect.ValueOf(config))
}

func logConfigFields(prefix string, v reflect.Value) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		key := configKey(prefix, field.Name)
		value := v.Field(i)
		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				log.Infof("%s=<nil>", key)
				continue
			}
			value = value.Elem()
		}

		if value.Kind() == reflect.Struct {
			logConfigFields(key, value)
			continue
		}

		if _, sensitive := field.Tag.Lookup("sensitive"); sensitive && !value.IsZero() {
			log.Infof("%s=*****", key)
			continue
		}
		log.Infof("%s=%v", key, value.Interface())
	}
}

func configKey(prefix, fieldName string) string {
	runes := []rune(fieldName)
	if len(runes) > 0 {
		runes[0] = unicode.ToLower(runes[0])
	}
	if prefix == "" {
		return string(runes)
	}
	return fmt.Sprintf("%s.%s", prefix, string(runes))
}
