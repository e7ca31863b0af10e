package parser

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/August26/proxystatus-go/internal/model"
)

// LoadFromFile reads proxy descriptors from path. The format is chosen by
// extension: .yaml/.yml and .toml are structured documents, anything else
// is read as one proxy per line (see ParseLine).
func LoadFromFile(path string, defaultKind model.ConnectionKind) ([]model.ProxyDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(f, defaultKind)
	case ".toml":
		return decodeTOML(f, defaultKind)
	default:
		return Parse(f, defaultKind)
	}
}

// Parse reads line-oriented proxy entries from r.
// Empty lines and lines starting with '#' are ignored.
func Parse(r io.Reader, defaultKind model.ConnectionKind) ([]model.ProxyDescriptor, error) {
	var out []model.ProxyDescriptor
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		d, err := ParseLine(line, defaultKind)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return out, nil
}

// ParseLine parses a single proxy entry.
//
// Supported:
//
//	direct | none
//	scheme://host:port [label]
//	host:port [label]
//	[ipv6]:port [label]
//
// The host is not validated here; that is the engine's job.
func ParseLine(line string, defaultKind model.ConnectionKind) (model.ProxyDescriptor, error) {
	line = strings.TrimSpace(line)
	target, label, _ := strings.Cut(line, " ")
	label = strings.TrimSpace(label)

	switch strings.ToLower(target) {
	case "direct", "none":
		return model.ProxyDescriptor{Kind: model.KindDirect, Label: label}, nil
	}

	kind := defaultKind
	if scheme, rest, ok := strings.Cut(target, "://"); ok {
		k, err := KindFromScheme(scheme)
		if err != nil {
			return model.ProxyDescriptor{}, err
		}
		kind = k
		target = strings.TrimSuffix(rest, "/")
	}
	if kind == "" {
		kind = model.KindHTTP
	}

	host, port, err := splitHostPort(target)
	if err != nil {
		return model.ProxyDescriptor{}, err
	}

	return model.ProxyDescriptor{
		Kind:  kind,
		Host:  host,
		Port:  port,
		Label: label,
	}, nil
}

// KindFromScheme maps a proxy URL scheme or type name to a ConnectionKind.
func KindFromScheme(s string) (model.ConnectionKind, error) {
	switch strings.ToLower(s) {
	case "http", "https":
		return model.KindHTTP, nil
	case "socks", "socks4", "socks4a", "socks5", "socks5h":
		return model.KindSOCKS, nil
	case "direct", "none", "":
		return model.KindDirect, nil
	default:
		return "", fmt.Errorf("unsupported proxy scheme %q", s)
	}
}

// splitHostPort handles host:port for IPv4, hostnames and bracketed IPv6.
func splitHostPort(s string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return "", 0, fmt.Errorf("invalid host:port %q: %w", s, err)
	}
	if host == "" {
		return "", 0, fmt.Errorf("missing host in %q", s)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}
	return host, port, nil
}
