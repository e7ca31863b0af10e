package geoip

import (
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/oschwald/geoip2-golang"
)

type fakeReader struct {
	city   *geoip2.City
	err    error
	closed bool
}

func (f *fakeReader) City(net.IP) (*geoip2.City, error) { return f.city, f.err }

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func TestLookup(t *testing.T) {
	city := &geoip2.City{}
	city.Country.IsoCode = "DE"
	city.City.Names = map[string]string{"en": "Berlin"}

	fr := &fakeReader{city: city}
	db := &Database{reader: fr}

	info, err := db.Lookup("198.51.100.4")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if info.Country != "DE" || info.City != "Berlin" {
		t.Fatalf("got %+v", info)
	}

	if err := db.Close(); err != nil || !fr.closed {
		t.Fatalf("close: err=%v closed=%v", err, fr.closed)
	}
}

func TestLookup_Errors(t *testing.T) {
	db := &Database{reader: &fakeReader{err: errors.New("boom")}}

	if _, err := db.Lookup("not-an-ip"); !errors.Is(err, ErrInvalidIP) {
		t.Fatalf("expected ErrInvalidIP, got %v", err)
	}
	if _, err := db.Lookup("198.51.100.4"); err == nil {
		t.Fatalf("expected reader error to propagate")
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.mmdb")); err == nil {
		t.Fatalf("expected error opening missing database")
	}
}
