// Package nonce recovers private keys from signatures whose nonces are
// affinely related (k₂ = a·k₁ + b).
//
// Two schemes are supported: ECDSA over secp256k1 and EdDSA over
// edwards25519. Given two signatures and the right (a, b), the private key
// is a closed form of the signature values; the Strategy searches for
// (a, b) in phases: exact nonce reuse, a list of common patterns, user
// patterns and finally a parallel sweep over ranges of a and b.
//
// # Quick Start
//
//	client := nonce.NewClient(nonce.ECDSA{})
//	result, err := client.RecoverKey(ctx, "signatures.json", "03...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Recovered key: %s\n", result.PrivateKey.Text(16))
//
// # Customization
//
//	strategy := nonce.NewStrategy(nonce.EdDSA{}).
//	    WithRangeConfig(nonce.RangeConfig{
//	        Ranges:     []nonce.Range{{A: [2]int{1, 10}, B: [2]int{-50000, 50000}}},
//	        MaxPairs:   100,
//	        NumWorkers: 16,
//	    }).
//	    WithPatternConfig(nonce.PatternConfig{
//	        CustomPatterns: []nonce.Pattern{
//	            {A: big.NewInt(1), B: big.NewInt(12345), Name: "custom_step", Priority: 1},
//	        },
//	        IncludeCommonPatterns: true,
//	    })
//
// When no single answer is wanted, Strategy.Candidates returns every key
// the patterns produce as a weighted candidate set.
package nonce
