package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/petcare/petcare-client/internal/core/domain"
)

// decodeError turns a backend error response into a *domain.Error.
//
// The backend answers with one of:
//
//	{"field": ["msg", ...], ...}
//	{"non_field_errors": ["msg"]}
//	{"detail": "msg"}
//	"msg"
//
// Anything else keeps only the status text.
func decodeError(status int, body []byte) *domain.Error {
	fields, detail := parseErrorBody(body)

	de := &domain.Error{
		Status:  status,
		Fields:  fields,
		Message: domain.Summarize(fields, detail, ""),
	}

	switch {
	case status == http.StatusUnauthorized:
		de.Kind = domain.KindAuthentication
	case status == http.StatusForbidden:
		de.Kind = domain.KindAuthentication
		de.Err = domain.ErrForbidden
	case status == http.StatusNotFound:
		de.Kind = domain.KindValidation
		de.Err = domain.ErrNotFound
	case status >= http.StatusInternalServerError:
		de.Kind = domain.KindNetwork
		if de.Message == "" {
			de.Message = domain.MsgNetwork
		}
	default:
		de.Kind = domain.KindValidation
	}
	if de.Err == nil {
		de.Err = fmt.Errorf("backend answered %d %s", status, http.StatusText(status))
	}
	return de
}

func parseErrorBody(body []byte) (map[string][]string, string) {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return nil, ""
	}

	var asString string
	if err := json.Unmarshal(body, &asString); err == nil {
		return nil, asString
	}

	var asList []any
	if err := json.Unmarshal(body, &asList); err == nil {
		return map[string][]string{domain.NonFieldKey: flatten(asList)}, ""
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, ""
	}

	var detail string
	fields := make(map[string][]string, len(obj))
	for k, v := range obj {
		if k == "detail" {
			detail = strings.Join(flatten(v), "; ")
			continue
		}
		if msgs := flatten(v); len(msgs) > 0 {
			fields[k] = msgs
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return fields, detail
}

// flatten collects the strings found in a decoded JSON value. Nested objects
// contribute their values in key order.
func flatten(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			out = append(out, flatten(t[k])...)
		}
		return out
	default:
		return []string{fmt.Sprint(t)}
	}
}
