package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mahdiidarabi/cryptonita/pkg/nonce"
)

func runNonce(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("nonce", stderr)
	var (
		schemeName     = fs.String("scheme", "ecdsa", "Signature scheme (ecdsa or eddsa)")
		signaturesFile = fs.String("signatures", "", "Path to signatures file (JSON or CSV)")
		publicKey      = fs.String("public-key", "", "Public key in hex format for verification")
		aRange         = fs.String("a-range", "", "Range for a values in brute-force (format: min,max)")
		bRange         = fs.String("b-range", "", "Range for b values in brute-force (format: min,max)")
		maxPairs       = fs.Int("max-pairs", 100, "Maximum signature pairs to test in brute-force")
		numWorkers     = fs.Int("workers", 0, "Number of parallel workers (0 = one per CPU)")
		noCommon       = fs.Bool("no-common", false, "Skip the common patterns")
		candidates     = fs.Bool("candidates", false, "List every key the patterns yield instead of searching")
		timeout        = fs.Duration("timeout", 0, "Give up after this long (0 = never)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose, stderr)

	if *signaturesFile == "" {
		fs.Usage()
		return fmt.Errorf("-signatures is required")
	}
	scheme, err := nonce.SchemeByName(*schemeName)
	if err != nil {
		return err
	}

	rangeConfig := nonce.DefaultRangeConfig()
	rangeConfig.MaxPairs = *maxPairs
	rangeConfig.NumWorkers = *numWorkers
	if *aRange != "" || *bRange != "" {
		r := nonce.Range{A: [2]int{1, 1}, B: [2]int{-100, 100}, Name: "custom"}
		if *aRange != "" {
			if r.A, err = parseRange(*aRange); err != nil {
				return fmt.Errorf("a-range: %w", err)
			}
		}
		if *bRange != "" {
			if r.B, err = parseRange(*bRange); err != nil {
				return fmt.Errorf("b-range: %w", err)
			}
		}
		rangeConfig.Ranges = []nonce.Range{r}
	}
	strategy := nonce.NewStrategy(scheme).
		WithRangeConfig(rangeConfig).
		WithPatternConfig(nonce.PatternConfig{IncludeCommonPatterns: !*noCommon})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if *candidates {
		return listCandidates(ctx, stdout, strategy, *signaturesFile, *publicKey)
	}

	start := time.Now()
	result, err := nonce.NewClient(scheme).WithStrategy(strategy).RecoverKey(ctx, *signaturesFile, *publicKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "[+] Successfully recovered private key in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(stdout, "    Private key: %s\n", result.PrivateKey.Text(16))
	fmt.Fprintf(stdout, "    Relationship: k2 = %s*k1 + %s\n", result.Relation.A, result.Relation.B)
	fmt.Fprintf(stdout, "    Signature pair: (%d, %d)\n", result.Pair[0], result.Pair[1])
	fmt.Fprintf(stdout, "    Pattern: %s\n", result.Pattern)
	if result.Verified {
		fmt.Fprintln(stdout, "    Verified against public key")
	}
	return nil
}

func listCandidates(ctx context.Context, stdout io.Writer, strategy *nonce.Strategy, source, publicKeyHex string) error {
	sigs, err := nonce.ParserFor(source).ParseSignatures(source)
	if err != nil {
		return err
	}
	var pub []byte
	if publicKeyHex != "" {
		if pub, err = nonce.DecodeHex(publicKeyHex); err != nil {
			return err
		}
	}
	keys, err := strategy.Candidates(ctx, sigs, pub)
	if err != nil {
		return err
	}
	for _, it := range keys.SortedItems() {
		fmt.Fprintf(stdout, "%s %0.4f\n", it.Key, it.Weight)
	}
	if keys.Len() == 0 {
		fmt.Fprintln(stdout, "[-] no key found")
	}
	return nil
}

func parseRange(s string) ([2]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("invalid range format: %s", s)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return [2]int{}, err
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return [2]int{}, err
	}
	if lo > hi {
		return [2]int{}, fmt.Errorf("invalid range %d > %d", lo, hi)
	}
	return [2]int{lo, hi}, nil
}
