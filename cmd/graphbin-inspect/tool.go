package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/graphbin-protocol/graphbin-go/pkg/graph"
	"github.com/graphbin-protocol/graphbin-go/pkg/inspect"
	"github.com/graphbin-protocol/graphbin-go/pkg/wire"
)

// tool holds the codec pair and formatter shared by one-shot and
// interactive modes.
type tool struct {
	writer    *wire.Writer
	reader    *wire.Reader
	formatter *inspect.Formatter
}

// run executes a single command and returns its output.
func (t *tool) run(cmd string, args []string) (string, error) {
	switch cmd {
	case "decode", "d":
		return t.cmdDecode(args)
	case "date":
		return t.cmdDate(args)
	case "string", "s":
		return t.cmdString(args)
	case "codes":
		return t.cmdCodes(), nil
	case "help", "?":
		return helpText, nil
	default:
		return "", fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (t *tool) cmdDecode(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: decode <hex>")
	}
	cleaned := strings.NewReplacer(" ", "", ":", "").Replace(strings.Join(args, ""))
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("bad hex input: %w", err)
	}
	v, err := t.reader.Decode(data)
	if err != nil {
		return "", fmt.Errorf("decode failed after %d bytes: %w", len(data), err)
	}
	return t.formatter.Format(v), nil
}

func (t *tool) cmdDate(args []string) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("usage: date <year> <month> <day>")
	}
	year, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return "", fmt.Errorf("bad year %q: %w", args[0], err)
	}
	month, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return "", fmt.Errorf("bad month %q: %w", args[1], err)
	}
	day, err := strconv.ParseUint(args[2], 10, 8)
	if err != nil {
		return "", fmt.Errorf("bad day %q: %w", args[2], err)
	}
	d, err := graph.NewDate(int32(year), uint8(month), uint8(day))
	if err != nil {
		return "", err
	}
	return t.encodeHex(d)
}

func (t *tool) cmdString(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: string <text>")
	}
	return t.encodeHex(strings.Join(args, " "))
}

func (t *tool) encodeHex(v any) (string, error) {
	data, err := t.writer.Encode(v)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data) + "\n", nil
}

func (t *tool) cmdCodes() string {
	codes := []wire.TypeCode{
		wire.TypeBoolean, wire.TypeInt8, wire.TypeInt16, wire.TypeInt32,
		wire.TypeInt64, wire.TypeFloat32, wire.TypeDate, wire.TypeFloat64,
		wire.TypeList, wire.TypeSet, wire.TypeMap, wire.TypeString,
		wire.TypeUUID, wire.TypeTimestamp, wire.TypeVertex, wire.TypeEdge,
		wire.TypeVertexProperty, wire.TypeProperty, wire.TypePath,
		wire.TypeNull,
	}
	var sb strings.Builder
	for _, c := range codes {
		fmt.Fprintf(&sb, "0x%02X  %s\n", byte(c), c)
	}
	fmt.Fprintf(&sb, "0x%02X-0x%02X  reserved for custom types\n",
		byte(wire.CustomTypeMin), byte(wire.CustomTypeMax))
	return sb.String()
}

const helpText = `Commands:
  decode <hex>         Decode a hex dump and print the value tree
  date <y> <m> <d>     Encode a calendar date and print the hex
  string <text>        Encode a string and print the hex
  codes                List the built-in type-code catalogue
  help                 Show this help
  exit                 Leave the interactive shell
`
