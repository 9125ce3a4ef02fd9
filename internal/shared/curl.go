// Utilities for importing request headers from cURL commands.
package shared

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRegex = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// RequestHeaders holds headers and cookies copied from a browser "copy as cURL" command.
//
// Lyrics services that sit behind a web session can be queried with these attached.
type RequestHeaders struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(path string) (*RequestHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// A cookie given with -b wins over a Cookie header.
func ParseCurlCommand(data []byte) (*RequestHeaders, error) {
	cmd := strings.ReplaceAll(string(data), "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	rh := &RequestHeaders{Headers: map[string]string{}}
	var headerCookie string

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(cmd, -1) {
		key, value, ok := strings.Cut(firstGroup(match), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if strings.EqualFold(key, "cookie") {
			if headerCookie == "" {
				headerCookie = value
			}
			continue
		}
		rh.Headers[key] = value
	}

	if m := curlCookieRegex.FindStringSubmatch(cmd); m != nil {
		rh.Cookie = firstGroup(m)
	}
	if rh.Cookie == "" {
		rh.Cookie = headerCookie
	}

	if len(rh.Headers) == 0 && rh.Cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}
	return rh, nil
}

// Apply sets every imported header (and the cookie) on h.
func (rh *RequestHeaders) Apply(h http.Header) {
	if rh == nil {
		return
	}
	for k, v := range rh.Headers {
		h.Set(k, v)
	}
	if rh.Cookie != "" {
		h.Set("Cookie", rh.Cookie)
	}
}

func firstGroup(match []string) string {
	if match[1] != "" {
		return match[1]
	}
	return match[2]
}
