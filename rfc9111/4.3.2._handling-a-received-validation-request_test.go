package rfc9111

import (
	"net/http"
	"testing"
	"time"
)

func conditionalRequest(method, since string) *http.Request {
	req, _ := http.NewRequest(method, "/page", nil)
	if since != "" {
		req.Header.Set("If-Modified-Since", since)
	}
	return req
}

func TestNotModified(t *testing.T) {
	stored := response(200, map[string]string{"Last-Modified": "Wed, 21 Oct 2015 07:28:00 GMT"})
	if !NotModified(conditionalRequest("GET", "Wed, 21 Oct 2015 07:28:00 GMT"), stored, t0) {
		t.Fatal("Same date should not be modified")
	}
	if !NotModified(conditionalRequest("HEAD", "Wednesday, 21-Oct-15 08:00:00 GMT"), stored, t0) {
		t.Fatal("Later date should not be modified")
	}
	if NotModified(conditionalRequest("GET", "Wed, 21 Oct 2015 07:27:59 GMT"), stored, t0) {
		t.Fatal("Earlier date should be modified")
	}
}

func TestNotModifiedIgnored(t *testing.T) {
	stored := response(200, map[string]string{"Last-Modified": "Wed, 21 Oct 2015 07:28:00 GMT"})
	since := "Wed, 21 Oct 2015 07:28:00 GMT"
	if NotModified(conditionalRequest("POST", since), stored, t0) {
		t.Fatal("POST should ignore If-Modified-Since")
	}
	if NotModified(conditionalRequest("GET", "yesterday"), stored, t0) {
		t.Fatal("Invalid date should be ignored")
	}
	if NotModified(conditionalRequest("GET", ""), stored, t0) {
		t.Fatal("Missing field should be ignored")
	}
	req := conditionalRequest("GET", since)
	req.Header.Set("If-None-Match", `"abc"`)
	if NotModified(req, stored, t0) {
		t.Fatal("If-None-Match takes precedence")
	}
	req = conditionalRequest("GET", since)
	req.Header.Add("If-Modified-Since", since)
	if NotModified(req, stored, t0) {
		t.Fatal("Multiple members should be ignored")
	}
}

func TestNotModifiedFallsBackToDate(t *testing.T) {
	stored := response(200, map[string]string{"Date": "Wed, 21 Oct 2015 07:28:00 GMT"})
	if !NotModified(conditionalRequest("GET", "Wed, 21 Oct 2015 07:28:00 GMT"), stored, t0.Add(time.Hour)) {
		t.Fatal("Date should be used as validator")
	}
	stored = response(200, nil)
	if NotModified(conditionalRequest("GET", "Wed, 21 Oct 2015 07:28:00 GMT"), stored, t0.Add(time.Hour)) {
		t.Fatal("Receipt time should be used as validator")
	}
}
