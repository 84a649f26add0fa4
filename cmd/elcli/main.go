// Command elcli compiles a single EL template and evaluates it against
// attributes loaded from a JSON or YAML file.
//
// Usage:
//
//	elcli -template 'Hello, ${name:toUpper()}!' -attrs attrs.json
//	elcli -template-file template.el -attrs attrs.yaml -regex=false
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flowbeam/el/pkg/el"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "elcli:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("elcli", flag.ContinueOnError)
	template := fs.String("template", "", "EL template text (mutually exclusive with -template-file)")
	templateFile := fs.String("template-file", "", "path to a file containing the EL template text")
	attrsPath := fs.String("attrs", "", "path to a JSON or YAML file of string attributes")
	regexEnabled := fs.Bool("regex", true, "enable regex-dependent builtins")
	verbose := fs.Bool("verbose", false, "log compile/evaluate diagnostics to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := loadTemplate(*template, *templateFile)
	if err != nil {
		return err
	}

	attrs, err := loadAttrs(*attrsPath)
	if err != nil {
		return err
	}

	opts := []el.CompileOption{el.WithRegexEnabled(*regexEnabled)}
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		opts = append(opts, el.WithLogger(logger))
	}

	expr, err := el.Compile(text, opts...)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	result, err := expr.Evaluate(el.RecordSet{el.MapRecord(attrs)})
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	fmt.Println(result.AsString())
	return nil
}

func loadTemplate(inline, path string) (string, error) {
	switch {
	case inline != "" && path != "":
		return "", fmt.Errorf("specify only one of -template or -template-file")
	case inline != "":
		return inline, nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read template file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("one of -template or -template-file is required")
	}
}

func loadAttrs(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attrs file: %w", err)
	}

	attrs := make(map[string]string)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &attrs); err != nil {
			return nil, fmt.Errorf("parse yaml attrs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &attrs); err != nil {
			return nil, fmt.Errorf("parse json attrs: %w", err)
		}
	}
	return attrs, nil
}
