package parser

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/August26/proxystatus-go/internal/model"
)

// entry is a proxy as written in a YAML or TOML document.
type entry struct {
	Kind  string `yaml:"kind" toml:"kind"`
	Host  string `yaml:"host" toml:"host"`
	Port  int    `yaml:"port" toml:"port"`
	Label string `yaml:"label" toml:"label"`
}

// yamlDocument:
//
//	proxies:
//	  - kind: socks5
//	    host: 10.0.0.1
//	    port: 1080
type yamlDocument struct {
	Proxies []entry `yaml:"proxies"`
}

// tomlDocument:
//
//	[[proxy]]
//	kind = "http"
//	host = "proxy.example.com"
//	port = 3128
type tomlDocument struct {
	Proxy []entry `toml:"proxy"`
}

func decodeYAML(r io.Reader, defaultKind model.ConnectionKind) ([]model.ProxyDescriptor, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return toDescriptors(doc.Proxies, defaultKind)
}

func decodeTOML(r io.Reader, defaultKind model.ConnectionKind) ([]model.ProxyDescriptor, error) {
	var doc tomlDocument
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("parsing toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing toml: unknown keys %v", undecoded)
	}
	return toDescriptors(doc.Proxy, defaultKind)
}

func toDescriptors(entries []entry, defaultKind model.ConnectionKind) ([]model.ProxyDescriptor, error) {
	out := make([]model.ProxyDescriptor, 0, len(entries))
	for i, e := range entries {
		kind := defaultKind
		if e.Kind != "" {
			k, err := KindFromScheme(e.Kind)
			if err != nil {
				return nil, fmt.Errorf("proxy[%d]: %w", i, err)
			}
			kind = k
		}
		if kind == "" {
			kind = model.KindHTTP
		}
		if kind != model.KindDirect {
			if e.Host == "" {
				return nil, fmt.Errorf("proxy[%d]: missing host", i)
			}
			if e.Port < 1 || e.Port > 65535 {
				return nil, fmt.Errorf("proxy[%d]: invalid port %d", i, e.Port)
			}
		}
		out = append(out, model.ProxyDescriptor{
			Kind:  kind,
			Host:  e.Host,
			Port:  e.Port,
			Label: e.Label,
		})
	}
	return out, nil
}
