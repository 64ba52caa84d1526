package lsp

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRPCFramingMultipleMessages(t *testing.T) {
	var buf bytes.Buffer
	msg1 := []byte(`{"jsonrpc":"2.0","method":"one"}`)
	msg2 := []byte(`{"jsonrpc":"2.0","method":"два"}`)
	require.NoError(t, writeMessage(&buf, msg1))
	require.NoError(t, writeMessage(&buf, msg2))

	reader := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	got1, err := readMessage(reader)
	require.NoError(t, err)
	got2, err := readMessage(reader)
	require.NoError(t, err)
	assert.Equal(t, msg1, got1)
	assert.Equal(t, msg2, got2)
}

func TestJSONRPCHeaders(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"extra header", "Content-Type: application/vscode-jsonrpc\r\ncontent-length: 2\r\n\r\n{}", "{}", false},
		{"missing length", "Content-Type: x\r\n\r\n{}", "", true},
		{"bad length", "Content-Length: abc\r\n\r\n", "", true},
		{"too large", "Content-Length: 999999999\r\n\r\n", "", true},
		{"truncated body", "Content-Length: 10\r\n\r\n{}", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readMessage(bufio.NewReader(strings.NewReader(tt.input)))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyChanges(t *testing.T) {
	text := "Процедура А()\n\tБ = 1;\nКонецПроцедуры\n"
	got := applyChanges(text, []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{1, 1}, End: position{1, 2}}, Text: "Значение"},
		{Range: &lspRange{Start: position{0, 12}, End: position{0, 12}}, Text: "Знач П"},
	})
	assert.Equal(t, "Процедура А(Знач П)\n\tЗначение = 1;\nКонецПроцедуры\n", got)

	// колонки в UTF-16: эмодзи занимает две
	assert.Equal(t, "// 😀!\n", applyChanges("// 😀\n", []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{0, 5}, End: position{0, 5}}, Text: "!"},
	}))
	// позиции за концом прижимаются
	assert.Equal(t, "аб!", applyChanges("аб", []textDocumentContentChangeEvent{
		{Range: &lspRange{Start: position{3, 0}, End: position{9, 9}}, Text: "!"},
	}))
	assert.Equal(t, "новый", applyChanges("старый", []textDocumentContentChangeEvent{{Text: "новый"}}))
}
