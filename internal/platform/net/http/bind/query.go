package bind

import (
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/form/v4"

	perr "reviewsense/internal/platform/errors"
)

var (
	decOnce sync.Once
	dec     *form.Decoder
)

func decoder() *form.Decoder {
	decOnce.Do(func() {
		dec = form.NewDecoder()
		dec.SetTagName("query")
		dec.SetMode(form.ModeExplicit)
		dec.RegisterCustomTypeFunc(func(vals []string) (any, error) {
			return time.ParseDuration(strings.TrimSpace(vals[0]))
		}, time.Duration(0))
	})
	return dec
}

// ParseQuery fills T from the query string using `query` tags, applies `default` tags
// for absent or empty keys, then validates the result
// A key sent with an empty value still sets a string or *string field
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	rt := reflect.TypeOf(dst)
	if rt == nil || rt.Kind() != reflect.Struct {
		return dst, perr.Newf(perr.ErrorCodeUnknown, "bind: query target %T is not a struct", dst)
	}
	if err := decoder().Decode(&dst, withDefaults(rt, r.URL.Query())); err != nil {
		return dst, decodeError(err)
	}
	if err := Validate(dst); err != nil {
		return dst, err
	}
	return dst, nil
}

// withDefaults copies q and fills keys that are missing or empty from `default` tags
func withDefaults(rt reflect.Type, q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = v
	}
	for i := range rt.NumField() {
		sf := rt.Field(i)
		def, ok := sf.Tag.Lookup("default")
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			continue
		}
		if v := out[name]; len(v) == 0 || v[0] == "" {
			out[name] = []string{def}
		}
	}
	return out
}

// decodeError reports the first failing key, in name order so the result is stable
func decodeError(err error) error {
	var des form.DecodeErrors
	if !errors.As(err, &des) || len(des) == 0 {
		return perr.InvalidArgf("%v", err)
	}
	keys := make([]string, 0, len(des))
	for k := range des {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	name := keys[0]
	return perr.WithField(perr.InvalidArgf("%s: %v", name, des[name]), name)
}
