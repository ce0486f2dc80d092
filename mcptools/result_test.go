package mcptools

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/websetkit/websets-mcp/resilience"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestJSONResult(t *testing.T) {
	res := jsonResult(map[string]string{"id": "ws_1"})
	if res.IsError {
		t.Error("IsError = true on success result")
	}

	text := resultText(t, res)
	if !strings.Contains(text, `"id": "ws_1"`) {
		t.Errorf("text = %q, want indented JSON", text)
	}
	if strings.Contains(text, "Next steps") {
		t.Error("hints section present without hints")
	}
}

func TestJSONResult_Hints(t *testing.T) {
	res := jsonResult(map[string]string{"id": "ws_1"},
		"Poll websets_get until status is idle.",
		"Then list items with websets_items_list.",
	)

	text := resultText(t, res)
	if !strings.Contains(text, "Next steps:") {
		t.Fatalf("text = %q, want hints section", text)
	}
	if !strings.Contains(text, "- Poll websets_get") || !strings.Contains(text, "- Then list items") {
		t.Errorf("text = %q, want both hints as bullets", text)
	}
}

func TestTextResult(t *testing.T) {
	res := textResult("done")
	if res.IsError || resultText(t, res) != "done" {
		t.Errorf("textResult = %+v", res)
	}
}

func TestErrorResult_Payload(t *testing.T) {
	err := &resilience.HTTPError{
		Status: 429,
		Body:   []byte(`{"error":{"code":"RATE_LIMITED","message":"slow down"}}`),
	}

	res := errorResult(err)
	if !res.IsError {
		t.Fatal("IsError = false")
	}

	var payload map[string]any
	if uerr := json.Unmarshal([]byte(resultText(t, res)), &payload); uerr != nil {
		t.Fatalf("payload is not JSON: %v", uerr)
	}
	if payload["code"] != "RATE_LIMITED" || payload["message"] != "slow down" {
		t.Errorf("payload = %v", payload)
	}
	if payload["kind"] != "rate_limit" || payload["retryable"] != true {
		t.Errorf("payload = %v", payload)
	}
	if _, ok := payload["hint"]; !ok {
		t.Error("retryable error missing hint")
	}
}

func TestErrorResult_PermanentNoHint(t *testing.T) {
	err := &resilience.HTTPError{Status: 404, Body: []byte(`{"error":{"message":"no such webset"}}`)}

	res := errorResult(err)
	var payload map[string]any
	if uerr := json.Unmarshal([]byte(resultText(t, res)), &payload); uerr != nil {
		t.Fatalf("payload is not JSON: %v", uerr)
	}
	if payload["retryable"] != false {
		t.Errorf("retryable = %v", payload["retryable"])
	}
	if _, ok := payload["hint"]; ok {
		t.Error("permanent error carries a retry hint")
	}
}

func TestErrorResult_PlainError(t *testing.T) {
	res := errorResult(errors.New("dial tcp: connection refused"))

	var payload map[string]any
	if uerr := json.Unmarshal([]byte(resultText(t, res)), &payload); uerr != nil {
		t.Fatalf("payload is not JSON: %v", uerr)
	}
	if payload["code"] != "NETWORK_ERROR" || payload["kind"] != "network" {
		t.Errorf("payload = %v", payload)
	}
}
