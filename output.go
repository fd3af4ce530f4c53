package main

import (
	"fmt"
	"io"

	"github.com/square/erg"
	"github.com/square/gsel/config"
	"github.com/square/gsel/nodeset"
	"gopkg.in/yaml.v3"
)

// render writes the hosts of every resolved query, in query order.
// Queries missing from results are skipped.
func render(w io.Writer, format string, queries []string, results map[string]nodeset.NodeSet) error {
	var resolved []string
	for _, q := range queries {
		if _, ok := results[q]; ok {
			resolved = append(resolved, q)
		}
	}

	switch format {
	case config.FormatList:
		for _, q := range resolved {
			for _, host := range results[q].Hosts() {
				fmt.Fprintln(w, host)
			}
		}
	case config.FormatFolded:
		for _, q := range resolved {
			fmt.Fprintln(w, nodeset.Fold(results[q]))
		}
	case config.FormatRange:
		// range syntax, e.g. web1..3.dc
		e := erg.New("", 0)
		for _, q := range resolved {
			fmt.Fprintln(w, e.Compress(results[q].Hosts()))
		}
	case config.FormatYAML:
		return renderYAML(w, resolved, results)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// renderYAML writes a mapping from query to host list, keeping query
// order.
func renderYAML(w io.Writer, queries []string, results map[string]nodeset.NodeSet) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, q := range queries {
		hosts := &yaml.Node{Kind: yaml.SequenceNode}
		for _, host := range results[q].Hosts() {
			hosts.Content = append(hosts.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: host})
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: q}, hosts)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
