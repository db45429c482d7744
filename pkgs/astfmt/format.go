package astfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/fxamacker/cbor/v2"
	"github.com/hokaccha/go-prettyjson"

	"github.com/shard-lang/shard/pkgs/ast"
)

// Format selects a serialization
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
	FormatTree Format = "tree"
)

// Formats lists the accepted format names
var Formats = []Format{FormatJSON, FormatCBOR, FormatTree}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want json, cbor or tree)", name)
}

// Write serializes node to w. Color only affects json and tree output.
func Write(w io.Writer, node ast.Node, format Format, useColor bool) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = JSON(node, useColor)
		data = append(data, '\n')
	case FormatCBOR:
		data, err = CBOR(node)
	case FormatTree:
		data = []byte(Tree(node, useColor))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// JSON renders the projection as indented JSON, syntax colored when
// useColor is set
func JSON(node ast.Node, useColor bool) ([]byte, error) {
	root := Project(node)
	if useColor {
		return prettyjson.Marshal(root)
	}
	return json.MarshalIndent(root, "", "  ")
}

// CBOR renders the projection with canonical CBOR encoding, so equal
// trees produce identical bytes
func CBOR(node ast.Node) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	data, err := encMode.Marshal(Project(node))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Tree renders the projection as an indented tree:
//
//	Program
//	└─ Assignment x
//	   └─ IntegerLiteral 10
func Tree(node ast.Node, useColor bool) string {
	typeColor := color.New(color.FgBlue)
	labelColor := color.New(color.FgHiBlack)
	if useColor {
		typeColor.EnableColor()
		labelColor.EnableColor()
	} else {
		typeColor.DisableColor()
		labelColor.DisableColor()
	}

	var b strings.Builder
	var render func(n *Node, prefix, childPrefix string)
	render = func(n *Node, prefix, childPrefix string) {
		b.WriteString(prefix)
		if n.Label != "" {
			b.WriteString(labelColor.Sprint(n.Label + ": "))
		}
		b.WriteString(typeColor.Sprint(n.Type))
		if n.Value != nil {
			b.WriteString(" ")
			b.WriteString(treeValue(n))
		}
		if len(n.Params) > 0 {
			b.WriteString("(" + strings.Join(n.Params, ", ") + ")")
		}
		b.WriteString("\n")

		for i, child := range n.Children {
			if i == len(n.Children)-1 {
				render(child, childPrefix+"└─ ", childPrefix+"   ")
			} else {
				render(child, childPrefix+"├─ ", childPrefix+"│  ")
			}
		}
	}

	if root := Project(node); root != nil {
		render(root, "", "")
	}
	return b.String()
}

// treeValue quotes string literals so whitespace stays visible; names and
// operators print bare
func treeValue(n *Node) string {
	if s, ok := n.Value.(string); ok && n.Type == "StringLiteral" {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(n.Value)
}
