// ABOUTME: Charm KV client wrapper for moodlog storage.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync.
package charm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/harperreed/moodlog/internal/storage"
)

const (
	dbName    = "moodlog"
	charmHost = "charm.2389.dev"

	HabitPrefix  = "habit:"
	EntryPrefix  = "entry:"
	MoodPrefix   = "mood:"
	HealthPrefix = "health:"
)

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Client stores moodlog records in a Charm KV database.
type Client struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

var _ storage.Repository = (*Client)(nil)

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV unless the user picked one
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(dbName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = &Client{
			kv:       db,
			autoSync: true,
		}

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

// GetClient returns the global client, initializing if needed.
func GetClient() (*Client, error) {
	return InitClient()
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
// Migrations turn it off and sync once at the end.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

var errReadOnly = fmt.Errorf("cannot write: database is locked by another process (MCP server?)")

// set stores a value with the given key.
func (c *Client) set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return errReadOnly
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// deleteKeys removes several keys and syncs once.
func (c *Client) deleteKeys(keys [][]byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return errReadOnly
	}

	for _, key := range keys {
		if err := c.kv.Delete(key); err != nil {
			return err
		}
	}
	c.syncIfEnabled()
	return nil
}

// listByPrefix returns all values with keys matching the given prefix.
func (c *Client) listByPrefix(prefix string) ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listByPrefixLocked(prefix)
}

// listByPrefixLocked is listByPrefix for callers already holding mu.
func (c *Client) listByPrefixLocked(prefix string) ([][]byte, error) {
	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	var results [][]byte
	for _, key := range filterKeys(keys, prefix) {
		val, err := c.kv.Get(key)
		if err != nil {
			return nil, err
		}
		results = append(results, val)
	}
	return results, nil
}

// getByIDPrefix retrieves a single value by ID prefix match.
// Returns error if no match or multiple matches found.
func (c *Client) getByIDPrefix(typePrefix, idPrefix string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	key, err := resolveKey(keys, typePrefix, idPrefix)
	if err != nil {
		return nil, err
	}
	return c.kv.Get(key)
}

// deleteByIDPrefix deletes a record by ID prefix match.
func (c *Client) deleteByIDPrefix(typePrefix, idPrefix string) error {
	c.mu.RLock()
	keys, err := c.kv.Keys()
	c.mu.RUnlock()
	if err != nil {
		return err
	}

	key, err := resolveKey(keys, typePrefix, idPrefix)
	if err != nil {
		return err
	}
	return c.deleteKeys([][]byte{key})
}

// filterKeys returns the keys starting with prefix.
func filterKeys(keys [][]byte, prefix string) [][]byte {
	p := []byte(prefix)
	var out [][]byte
	for _, key := range keys {
		if bytes.HasPrefix(key, p) {
			out = append(out, key)
		}
	}
	return out
}

// resolveKey finds the single key under typePrefix whose ID starts with idPrefix.
func resolveKey(keys [][]byte, typePrefix, idPrefix string) ([]byte, error) {
	if idPrefix == "" {
		return nil, fmt.Errorf("not found: %s", idPrefix)
	}
	matches := filterKeys(keys, typePrefix+idPrefix)
	if len(matches) == 0 {
		return nil, fmt.Errorf("not found: %s", idPrefix)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("ambiguous prefix %s: matches multiple records", idPrefix)
	}
	return matches[0], nil
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// decodeAll unmarshals every value, skipping invalid ones.
func decodeAll[T any](values [][]byte) []*T {
	out := make([]*T, 0, len(values))
	for _, v := range values {
		item, err := unmarshalJSON[T](v)
		if err != nil {
			continue // Skip invalid entries
		}
		out = append(out, item)
	}
	return out
}

// marshalJSON is a helper to marshal data to JSON.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
