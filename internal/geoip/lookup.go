// Package geoip resolves proxy addresses to a location using a MaxMind
// database.
package geoip

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/August26/proxystatus-go/internal/model"
)

var ErrInvalidIP = errors.New("invalid ip")

// cityReader is the subset of *geoip2.Reader used here.
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// Database implements model.IPResolver.
type Database struct {
	reader cityReader
}

func Open(path string) (*Database, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &Database{reader: r}, nil
}

func (d *Database) Lookup(ipStr string) (model.GeoInfo, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return model.GeoInfo{}, fmt.Errorf("%w: %q", ErrInvalidIP, ipStr)
	}

	record, err := d.reader.City(ip)
	if err != nil {
		return model.GeoInfo{}, fmt.Errorf("geoip lookup %s: %w", ipStr, err)
	}

	return model.GeoInfo{
		Country: record.Country.IsoCode,
		City:    record.City.Names["en"],
	}, nil
}

func (d *Database) Close() error {
	return d.reader.Close()
}

var _ model.IPResolver = (*Database)(nil)
