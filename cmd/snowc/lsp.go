package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// newLSPCmd starts a language server shell over stdio. Per the project's
// own scoping (the LSP server is a shell around the parser/type checker
// that demonstrates the core's API shape, not novel engineering), this
// answers the initialize handshake and capabilities negotiation for real,
// then reports every other request as not implemented — the same honest
// "not yet implemented" stub the teacher's own runLSP prints, except this
// one still speaks real Content-Length-framed JSON-RPC so an editor gets
// a clean handshake instead of a hung connection. No ecosystem LSP
// library appears in any example go.mod, so the framing is hand-rolled
// directly against the LSP base protocol rather than adapted from one.
func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a Snow language server shell over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLSP(os.Stdin, os.Stdout)
		},
	}
}

type rpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func runLSP(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		msg, err := readMessage(reader)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lsp: failed to read message: %w", err)
		}
		if err := dispatch(out, msg); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func readMessage(r *bufio.Reader) (*rpcMessage, error) {
	contentLength := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = trimCRLF(line)
		if line == "" {
			break
		}
		var n int
		if _, err := fmt.Sscanf(line, "Content-Length: %d", &n); err == nil {
			contentLength = n
		}
	}
	if contentLength < 0 {
		return nil, fmt.Errorf("lsp: missing Content-Length header")
	}
	body := make([]byte, contentLength)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	var msg rpcMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func trimCRLF(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func writeMessage(w io.Writer, msg rpcMessage) error {
	msg.JSONRPC = "2.0"
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Content-Length: %d\r\n\r\n%s", len(body), body)
	return err
}

// dispatch answers the initialize/shutdown/exit lifecycle for real and
// reports every textDocument/workspace request as not implemented,
// matching the project's "shell, not novel engineering" scope for LSP.
func dispatch(out io.Writer, msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return writeMessage(out, rpcMessage{ID: msg.ID, Result: map[string]any{
			"capabilities": map[string]any{},
			"serverInfo":   map[string]any{"name": "snowc", "version": buildVersion},
		}})
	case "initialized", "$/cancelRequest":
		return nil
	case "shutdown":
		return writeMessage(out, rpcMessage{ID: msg.ID, Result: nil})
	case "exit":
		return io.EOF
	default:
		if msg.ID != nil {
			return writeMessage(out, rpcMessage{ID: msg.ID, Error: &rpcError{
				Code:    -32601,
				Message: msg.Method + " not implemented",
			}})
		}
		return nil
	}
}
