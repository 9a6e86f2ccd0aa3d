package testing

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// AdminToken is the token tests export as ADMIN_TOKEN.
const AdminToken = "secret"

// AdminHeaders returns the headers of an authorised admin request.
func AdminHeaders() map[string]string {
	return map[string]string{"x-admin-token": AdminToken}
}

// PerformRequest Helper for performing requests in tests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = &bytes.Buffer{}
	}

	return perform(router, method, path, reqBody, "application/json", headers)
}

// PerformRawRequest sends body as-is, for payloads that must not be re-encoded.
func PerformRawRequest(router *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	return perform(router, method, path, bytes.NewBuffer(body), "application/json", headers)
}

// PerformUpload posts files as a multipart form under the given field name.
func PerformUpload(router *gin.Engine, path, field string, files map[string]string, headers map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			panic("failed to create form file: " + err.Error())
		}
		if _, err := part.Write([]byte(content)); err != nil {
			panic("failed to write form file: " + err.Error())
		}
	}
	if err := w.Close(); err != nil {
		panic("failed to close multipart writer: " + err.Error())
	}

	return perform(router, "POST", path, &body, w.FormDataContentType(), headers)
}

func perform(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}
