// Package network identifies which Bitcoin network a request or page targets.
package network

import (
	"fmt"
	"strings"
)

// Network is one of the independently operated chains the API can target.
type Network string

const (
	Mainchain Network = "mainchain"
	Testnetv3 Network = "testnetv3"
	Testnetv4 Network = "testnetv4"
	Signet    Network = "signet"

	// Default is used when a path names no network.
	Default = Mainchain
)

// All lists the recognised networks in display order.
var All = []Network{Mainchain, Testnetv3, Testnetv4, Signet}

var mempoolURLs = map[Network]string{
	Mainchain: "https://mempool.space/",
	Testnetv3: "https://mempool.space/testnet/",
	Testnetv4: "https://mempool.space/testnet4/",
	Signet:    "https://mempool.space/signet/",
}

// Resolve returns the first path segment that names a network, or Default.
func Resolve(path string) Network {
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if IsValid(seg) {
			return Network(seg)
		}
	}
	return Default
}

func IsValid(s string) bool {
	_, ok := mempoolURLs[Network(s)]
	return ok
}

// Parse is the strict form used for configuration and flags.
func Parse(s string) (Network, error) {
	if !IsValid(s) {
		return "", fmt.Errorf("invalid network: %s. Valid networks are: %s", s, strings.Join(Names(), ", "))
	}
	return Network(s), nil
}

func Names() []string {
	names := make([]string, len(All))
	for i, n := range All {
		names[i] = string(n)
	}
	return names
}

func (n Network) String() string {
	return string(n)
}

// MempoolURL is the mempool.space root for the network, with a trailing slash.
func (n Network) MempoolURL() string {
	return mempoolURLs[n]
}

// ExplorerURL is the block explorer root; mempool.space serves both roles.
func (n Network) ExplorerURL() string {
	return mempoolURLs[n]
}

// TxURL links a txid on the public explorer.
func (n Network) TxURL(txid string) string {
	return n.ExplorerURL() + "tx/" + txid
}
