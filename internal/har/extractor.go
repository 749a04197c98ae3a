package har

import "fmt"

// CheckKind selects which detector check operation applies to a field.
// Five operations exist; the set-cookie header and attached cookies share
// the cookie-string operation.
type CheckKind int

const (
	// CheckURL applies the detector's URL check.
	CheckURL CheckKind = iota
	// CheckReferrer applies the referrer check.
	CheckReferrer
	// CheckPostData applies the POST body check.
	CheckPostData
	// CheckLocation applies the location-header check.
	CheckLocation
	// CheckCookie applies the cookie-string check.
	CheckCookie
)

// Leak-method field names recorded with each leak. The casing is part of
// the results format, including the capitalized attached-cookie name.
const (
	FieldURL       = "url"
	FieldReferrer  = "referrer"
	FieldPostData  = "postData"
	FieldLocation  = "location"
	FieldSetCookie = "setCookie"
	FieldCookies   = "Cookies"
)

// Field is one extracted text field of a traffic entry, ready for a
// detection call.
type Field struct {
	// Name is the leak-method name recorded with matches from this field.
	Name string

	// Value is the text to check.
	Value string

	// Kind selects the detector operation for this field.
	Kind CheckKind
}

// Fields extracts the checkable fields of one entry: the request URL, the
// Referer request header, the POST body, the Location and Set-Cookie
// response headers, and each attached cookie as a separate "name=value"
// field. Absent or empty fields are skipped, so every returned Field has a
// non-empty Value.
//
// Cookies are returned one Field per cookie, never concatenated: a match
// must be attributable to the single cookie that carried it.
func Fields(e *Entry) []Field {
	fields := make([]Field, 0, 6)

	appendField := func(name, value string, kind CheckKind) {
		if value == "" {
			return
		}
		fields = append(fields, Field{Name: name, Value: value, Kind: kind})
	}

	appendField(FieldURL, e.Request.URL, CheckURL)
	appendField(FieldReferrer, HeaderValue(e.Request.Headers, "Referer"), CheckReferrer)
	if e.Request.PostData != nil {
		appendField(FieldPostData, e.Request.PostData.Text, CheckPostData)
	}
	appendField(FieldLocation, HeaderValue(e.Response.Headers, "Location"), CheckLocation)
	appendField(FieldSetCookie, HeaderValue(e.Response.Headers, "Set-Cookie"), CheckCookie)

	for _, cookie := range e.Cookies {
		appendField(FieldCookies, fmt.Sprintf("%s=%s", cookie.Name, cookie.Value), CheckCookie)
	}

	return fields
}
