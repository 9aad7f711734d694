package termrender

import (
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// profileSchemaVersion tags persisted profiles. Entries written under a
// different schema are treated as misses and rebuilt.
const profileSchemaVersion = 1

// profileExt is the filename extension of persisted profiles.
const profileExt = ".profile"

// Fingerprint identifies a font configuration for cache lookup. Two
// invocations with an identical fingerprint reuse the same cache entry;
// changing any component forces a miss.
type Fingerprint struct {
	Path      string
	ModTime   int64 // unix nanoseconds
	PixelSize int
}

// NewFingerprint builds a fingerprint from its pure inputs. Keeping the
// construction free of filesystem access lets tests exercise cache identity
// without real font files.
func NewFingerprint(path string, modTime time.Time, pixelSize int) Fingerprint {
	return Fingerprint{
		Path:      path,
		ModTime:   modTime.UnixNano(),
		PixelSize: pixelSize,
	}
}

// FingerprintFile stats the font file and derives its fingerprint.
func FingerprintFile(path string, pixelSize int) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	return NewFingerprint(path, info.ModTime(), pixelSize), nil
}

// key derives the cache filename stem from the fingerprint triple.
func (fp Fingerprint) key() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%d",
		fp.Path, fp.ModTime, fp.PixelSize)))
	return fmt.Sprintf("%x", sum[:12])
}

// FontProfile is the persisted unit of the cache: a schema version, the
// fingerprint it was built for, and the brightness palette.
type FontProfile struct {
	Version     int
	Fingerprint Fingerprint
	Palette     Palette
}

// NewFontProfile builds a profile under the current schema version.
func NewFontProfile(fp Fingerprint, p Palette) *FontProfile {
	return &FontProfile{
		Version:     profileSchemaVersion,
		Fingerprint: fp,
		Palette:     p,
	}
}

// Cache persists brightness profiles under a directory, one gzip-compressed
// gob file per fingerprint. The cache is a pure optimization: every failure
// mode degrades to recomputation, never to a failed run.
type Cache struct {
	Dir string

	// Log receives warnings; nil discards them. Debug additionally
	// surfaces miss diagnostics.
	Log   *log.Logger
	Debug bool
}

// NewCache returns a cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{Dir: dir}
}

// Load returns the cached profile for the fingerprint, if a valid one
// exists. A missing, unreadable, corrupted, or schema-incompatible entry is
// a miss, not an error.
func (c *Cache) Load(fp Fingerprint) (*FontProfile, bool) {
	path := filepath.Join(c.Dir, fp.key()+profileExt)

	f, err := os.Open(path)
	if err != nil {
		c.debugf("cache miss for %s: %v", fp.Path, err)
		return nil, false
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		c.debugf("cache entry %s corrupt: %v", path, err)
		return nil, false
	}
	defer gz.Close()

	var profile FontProfile
	if err := gob.NewDecoder(gz).Decode(&profile); err != nil {
		c.debugf("cache entry %s corrupt: %v", path, err)
		return nil, false
	}

	if profile.Version != profileSchemaVersion {
		c.debugf("cache entry %s has schema %d, want %d",
			path, profile.Version, profileSchemaVersion)
		return nil, false
	}
	if profile.Fingerprint != fp {
		c.debugf("cache entry %s fingerprint mismatch", path)
		return nil, false
	}
	if err := profile.Palette.Validate(); err != nil {
		c.debugf("cache entry %s invalid: %v", path, err)
		return nil, false
	}

	return &profile, true
}

// Store persists the profile, overwriting any entry for its fingerprint.
// The write lands in a temporary file first and is renamed into place, so a
// crash mid-write never leaves an entry Load would mistake for valid.
func (c *Cache) Store(profile *FontProfile) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.Dir, "profile-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	gz := gzip.NewWriter(tmp)
	if err := gob.NewEncoder(gz).Encode(profile); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("compressing profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}

	final := filepath.Join(c.Dir, profile.Fingerprint.key()+profileExt)
	if err := os.Rename(tmp.Name(), final); err != nil {
		return fmt.Errorf("publishing profile: %w", err)
	}
	return nil
}

// Clear removes all cached profiles. Individual deletion failures are
// logged and skipped; Clear never fails the overall run.
func (c *Cache) Clear() {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logf("warning: could not read cache dir %s: %v", c.Dir, err)
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != profileExt {
			continue
		}
		path := filepath.Join(c.Dir, entry.Name())
		if err := os.Remove(path); err != nil {
			c.logf("warning: could not remove %s: %v", path, err)
		}
	}
}

func (c *Cache) logf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Printf(format, args...)
	}
}

func (c *Cache) debugf(format string, args ...interface{}) {
	if c.Log != nil && c.Debug {
		c.Log.Printf(format, args...)
	}
}
