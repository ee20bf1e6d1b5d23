// Command mcpproxy bridges a stdio MCP client to the HTTP server. Clients
// that only speak the stdio transport run this binary; each JSON-RPC message
// read from stdin is POSTed to the server and the response written to stdout.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/glasskite/unrealmcp/internal/logging"
	"github.com/glasskite/unrealmcp/mcp"
)

func main() {
	if err := run(parseFlags(), os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// Flags holds the command line configuration.
type Flags struct {
	Endpoint string
	Timeout  time.Duration
}

func parseFlags() *Flags {
	return parseFlagsArgs(os.Args[1:])
}

func parseFlagsArgs(args []string) *Flags {
	var flags Flags
	fs := flag.NewFlagSet("mcpproxy", flag.ContinueOnError)

	fs.StringVar(&flags.Endpoint, "endpoint", "http://127.0.0.1:30069/mcp", "URL of the MCP HTTP endpoint")
	fs.DurationVar(&flags.Timeout, "timeout", 60*time.Second, "Per-request timeout")
	_ = fs.Parse(args)

	return &flags
}

func newHTTPClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = log.New(io.Discard, "", 0)
	return client
}

// forward POSTs one raw JSON-RPC message and returns the response body.
func forward(ctx context.Context, client *retryablehttp.Client, endpoint string, body []byte) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forward request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return data, nil
}

// transportError synthesizes a local JSON-RPC error so the stdio client sees
// a well-formed envelope even when the HTTP hop fails. The original request's
// id is echoed when it can be recovered.
func transportError(request []byte, cause error) []byte {
	resp := mcp.Response{
		JSONRPC: "2.0",
		Error: &mcp.Error{
			Code:    mcp.CodeInternalError,
			Message: "Failed to reach MCP server",
			Data:    cause.Error(),
		},
	}
	if req, perr := mcp.ParseRequest(request); perr == nil {
		resp.ID = req.ID
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Failed to reach MCP server"}}`)
	}
	return data
}

func run(flags *Flags, input io.Reader, output io.Writer) error {
	sessionID := uuid.NewString()
	logging.Logger().Info("proxy starting", "endpoint", flags.Endpoint, "sessionId", sessionID)

	client := newHTTPClient()
	decoder := json.NewDecoder(input)

	for {
		var message json.RawMessage
		if err := decoder.Decode(&message); err != nil {
			if err == io.EOF {
				logging.Logger().Info("stdin closed, exiting", "sessionId", sessionID)
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), flags.Timeout)
		response, err := forward(ctx, client, flags.Endpoint, message)
		cancel()
		if err != nil {
			logging.Logger().Error("forward failed", "sessionId", sessionID, "err", err)
			response = transportError(message, err)
		}

		if _, err := output.Write(append(response, '\n')); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}
