package nonce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
)

var (
	// ErrTooFewSignatures is returned when less than two signatures are given.
	ErrTooFewSignatures = errors.New("not enough signatures")
	// ErrNotFound is returned when no phase recovers the key.
	ErrNotFound = errors.New("failed to recover private key")
)

// Client ties a scheme, a parser and a strategy together.
type Client struct {
	scheme   Scheme
	strategy *Strategy
	parser   SignatureParser
}

// NewClient creates a client for scheme with the default strategy. The
// parser is picked from the file extension unless one is set.
func NewClient(scheme Scheme) *Client {
	return &Client{scheme: scheme, strategy: NewStrategy(scheme)}
}

// WithStrategy sets a custom strategy.
func (c *Client) WithStrategy(strategy *Strategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// RecoverKey recovers a private key from the signatures in source. The
// public key, hex encoded, is optional.
func (c *Client) RecoverKey(ctx context.Context, source string, publicKeyHex string) (*Result, error) {
	parser := c.parser
	if parser == nil {
		parser = ParserFor(source)
	}
	signatures, err := parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	return c.RecoverKeyFromSignatures(ctx, signatures, publicKeyHex)
}

// RecoverKeyFromSignatures recovers a private key from parsed signatures.
func (c *Client) RecoverKeyFromSignatures(ctx context.Context, signatures []*Signature, publicKeyHex string) (*Result, error) {
	if len(signatures) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 signatures, got %d", ErrTooFewSignatures, len(signatures))
	}
	publicKey, err := c.publicKey(publicKeyHex)
	if err != nil {
		return nil, err
	}
	if _, err := c.strategy.prepare(signatures, publicKey); err != nil {
		return nil, err
	}

	result := c.strategy.Search(ctx, signatures, publicKey)
	if result == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return result, nil
}

func (c *Client) publicKey(publicKeyHex string) ([]byte, error) {
	if publicKeyHex == "" {
		return nil, nil
	}
	pub, err := DecodeHex(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if err := c.scheme.CheckPublicKey(pub); err != nil {
		return nil, err
	}
	return pub, nil
}

// SetLogger sets the logger the search reports its progress to. Nothing is
// logged by default.
func SetLogger(l *slog.Logger) { logx.Set(l) }
