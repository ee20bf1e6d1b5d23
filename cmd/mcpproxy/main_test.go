package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasskite/unrealmcp/mcp"
)

func TestParseFlagsArgs(t *testing.T) {
	flags := parseFlagsArgs(nil)
	assert.Equal(t, "http://127.0.0.1:30069/mcp", flags.Endpoint)
	assert.Equal(t, 60*time.Second, flags.Timeout)

	flags = parseFlagsArgs([]string{"-endpoint", "http://localhost:9999/mcp", "-timeout", "5s"})
	assert.Equal(t, "http://localhost:9999/mcp", flags.Endpoint)
	assert.Equal(t, 5*time.Second, flags.Timeout)
}

func TestTransportErrorEchoesID(t *testing.T) {
	out := transportError([]byte(`{"jsonrpc":"2.0","method":"ping","id":42}`), assert.AnError)

	resp, err := mcp.ParseResponse(out)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.CodeInternalError, resp.Error.Code)
	assert.Equal(t, "42", resp.ID.String())
	assert.True(t, resp.ID.IsNumber())
}

func TestTransportErrorUnparseableRequest(t *testing.T) {
	out := transportError([]byte(`{broken`), assert.AnError)

	resp, err := mcp.ParseResponse(out)
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.True(t, resp.ID.IsZero())
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	registry := mcp.NewRegistry()
	server, err := mcp.NewServer(registry, mcp.Implementation{Name: "test", Version: "0.0.1"})
	require.NoError(t, err)

	handler := mcp.NewHTTPHandler(server)
	t.Cleanup(handler.Close)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestRunForwardsMessages(t *testing.T) {
	backend := newBackend(t)

	input := strings.NewReader(
		`{"jsonrpc":"2.0","method":"ping","id":1}` + "\n" +
			`{"jsonrpc":"2.0","method":"tools/list","id":"two"}` + "\n")
	var output bytes.Buffer

	flags := &Flags{Endpoint: backend.URL, Timeout: 5 * time.Second}
	require.NoError(t, run(flags, input, &output))

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 2)

	first, err := mcp.ParseResponse([]byte(lines[0]))
	require.NoError(t, err)
	assert.Nil(t, first.Error)
	assert.Equal(t, "1", first.ID.String())

	second, err := mcp.ParseResponse([]byte(lines[1]))
	require.NoError(t, err)
	assert.Nil(t, second.Error)
	assert.True(t, second.ID.IsString())

	var listResult mcp.ListToolsResult
	raw, ok := second.Result.(json.RawMessage)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal(raw, &listResult))
	assert.Empty(t, listResult.Tools)
}

func TestRunSynthesizesErrorWhenServerUnreachable(t *testing.T) {
	input := strings.NewReader(`{"jsonrpc":"2.0","method":"ping","id":9}` + "\n")
	var output bytes.Buffer

	// nothing is listening on this port
	flags := &Flags{Endpoint: "http://127.0.0.1:1/mcp", Timeout: 2 * time.Second}
	require.NoError(t, run(flags, input, &output))

	resp, err := mcp.ParseResponse(bytes.TrimSpace(output.Bytes()))
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.CodeInternalError, resp.Error.Code)
	assert.Equal(t, "9", resp.ID.String())
}
