package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/ldraw/pkg/utils"
)

const (
	OutputTable = ""
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func outputFormat(o string) (string, error) {
	o = strings.ToLower(strings.TrimSpace(o))
	switch o {
	case OutputTable, OutputJSON, OutputYAML:
		return o, nil
	}
	return "", fmt.Errorf("unknown output format %q", o)
}

// PrintStructured prints an object in the given machine readable
// format.
func PrintStructured(w io.Writer, format string, obj interface{}) error {
	var data []byte
	var err error
	switch format {
	case OutputJSON:
		data, err = json.Marshal(obj)
	case OutputYAML:
		data, err = yaml.Marshal(obj)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", strings.TrimRight(string(data), "\n"))
	return nil
}

// PrintTable prints rows left aligned below the given column headers.
func PrintTable(w io.Writer, columnList []string, rows [][]string) {
	max := make([]int, len(columnList))
	for i, s := range columnList {
		max[i] = len(s)
	}
	for _, cols := range rows {
		for i, s := range cols {
			if max[i] < len(s) {
				max[i] = len(s)
			}
		}
	}

	f := formatString(max)
	printLine(w, columnList, f)
	for _, cols := range rows {
		printLine(w, cols, f)
	}
}

func printLine(w io.Writer, cols []string, msg string) {
	fmt.Fprintf(w, "%s\n", strings.TrimRight(fmt.Sprintf(msg, utils.ConvertSlice[any](cols)...), " "))
}

func formatString(max []int) string {
	msg := ""
	for _, l := range max {
		msg += fmt.Sprintf("%%-%ds ", l)
	}
	return msg[:len(msg)-1]
}
