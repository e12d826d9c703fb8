package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// HTTPTriggerRequest is the payload the Azure Functions host posts to a
// custom handler for an HTTP trigger.
type HTTPTriggerRequest struct {
	Data struct {
		Req struct {
			URL             string              `json:"Url"`
			Method          string              `json:"Method"`
			Query           map[string]string   `json:"Query"`
			Headers         map[string][]string `json:"Headers"`
			Params          map[string]string   `json:"Params"`
			Body            string              `json:"Body"`
			IsBase64Encoded bool                `json:"isBase64Encoded"`
		} `json:"req"`
	} `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// HTTPTriggerResponse is the reply the host expects from a custom handler.
type HTTPTriggerResponse struct {
	Outputs struct {
		Res struct {
			StatusCode int               `json:"statusCode"`
			Headers    map[string]string `json:"headers"`
			Body       string            `json:"body"`
		} `json:"res"`
	} `json:"Outputs"`
	Logs        []string `json:"Logs,omitempty"`
	ReturnValue any      `json:"ReturnValue,omitempty"`
}

// HandleHTTPTrigger unwraps a host invocation into a plain request, serves it
// with next and wraps the recorded response for the host.
func (d *Dependencies) HandleHTTPTrigger(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var invoke HTTPTriggerRequest
		if err := json.NewDecoder(r.Body).Decode(&invoke); err != nil {
			slog.Error("failed to unmarshal HTTP trigger request", "error", err)
			http.Error(w, "Failed to unmarshal request", http.StatusBadRequest)
			return
		}
		req := invoke.Data.Req

		target, err := url.Parse(req.URL)
		if err != nil {
			http.Error(w, "Invalid request URL", http.StatusBadRequest)
			return
		}
		if len(req.Query) > 0 {
			q := target.Query()
			for k, v := range req.Query {
				if !q.Has(k) {
					q.Set(k, v)
				}
			}
			target.RawQuery = q.Encode()
		}

		body, err := triggerBody(req.Body, req.IsBase64Encoded, headerValue(req.Headers, "Content-Type"))
		if err != nil {
			slog.Warn("failed to decode HTTP trigger body", "error", err)
			http.Error(w, "Invalid base64 body", http.StatusBadRequest)
			return
		}

		inner, err := http.NewRequestWithContext(r.Context(), req.Method, target.String(), body)
		if err != nil {
			slog.Error("failed to create internal request", "error", err)
			http.Error(w, "Failed to create internal request", http.StatusInternalServerError)
			return
		}
		for k, values := range req.Headers {
			for _, v := range values {
				inner.Header.Add(k, v)
			}
		}
		slog.Info("serving wrapped HTTP request", "method", inner.Method, "path", inner.URL.Path)

		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, inner)
		res := recorder.Result()
		defer res.Body.Close()
		resBody, _ := io.ReadAll(res.Body)

		var out HTTPTriggerResponse
		out.Outputs.Res.StatusCode = res.StatusCode
		out.Outputs.Res.Headers = make(map[string]string, len(res.Header))
		for k, v := range res.Header {
			out.Outputs.Res.Headers[k] = strings.Join(v, ", ")
		}
		if strings.HasPrefix(res.Header.Get("Content-Type"), "image/") {
			out.Outputs.Res.Body = base64.StdEncoding.EncodeToString(resBody)
			out.Outputs.Res.Headers["Content-Transfer-Encoding"] = "base64"
		} else {
			out.Outputs.Res.Body = string(resBody)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			slog.Error("failed to encode HTTP trigger response", "error", err)
		}
	}
}

// triggerBody decodes the invocation body. Some hosts send multipart uploads
// base64 encoded without setting the flag.
func triggerBody(raw string, isBase64 bool, contentType string) (io.Reader, error) {
	if raw == "" {
		return http.NoBody, nil
	}
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(decoded), nil
	}
	if strings.HasPrefix(contentType, "multipart/") {
		if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
			return bytes.NewReader(decoded), nil
		}
	}
	return strings.NewReader(raw), nil
}

func headerValue(headers map[string][]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
