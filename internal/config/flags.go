package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// PeerList collects endpoints from a comma separated flag value. The flag
// may be repeated; values accumulate in order.
type PeerList []string

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a relay listen address in format [host]:[port]
//	-c/-config json file path with configs
//	-log-level zerolog level name
//	-scenario client, server, preset or auto
//	-preset preset name
//	-peers comma separated peer endpoints (repeatable)
//	-server-like, -large-storage, -prefer-large-storage runtime environment
//	-overrides JSON object of option overrides
//	-i run the interactive preset picker
//	-discover relay URL to fetch peers from
//	-discover-timeout discovery request timeout (e.g., "5s")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var peers PeerList
	var jsonConfigPath string
	var logLevel string
	var scenario, preset, overrides string
	var serverLike, largeStorage, preferLarge, interactive bool
	var discoverURL string
	var discoverTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&scenario, "scenario", "", "Scenario: client, server, preset or auto")
	flag.StringVar(&preset, "preset", "", "Preset name: FAST, RELIABLE, MINIMAL or COLLABORATIVE")
	flag.Var(&peers, "peers", "Comma separated peer endpoints")
	flag.BoolVar(&serverLike, "server-like", false, "Runtime has a writable filesystem")
	flag.BoolVar(&largeStorage, "large-storage", false, "Runtime has a large object store")
	flag.BoolVar(&preferLarge, "prefer-large-storage", false, "Prefer the large object store")
	flag.StringVar(&overrides, "overrides", "", "JSON object of option overrides")
	flag.BoolVar(&interactive, "i", false, "Pick a preset interactively")
	flag.StringVar(&discoverURL, "discover", "", "Relay URL to discover peers from")
	flag.DurationVar(&discoverTimeout, "discover-timeout", 0, "Discovery timeout (e.g., 5s)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Node: Node{
			Scenario:           scenario,
			Preset:             preset,
			Peers:              peers,
			ServerLike:         serverLike,
			HasLargeStorage:    largeStorage,
			PreferLargeStorage: preferLarge,
			Overrides:          overrides,
			Interactive:        interactive,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Discovery: Discovery{
			URL:     discoverURL,
			Timeout: discoverTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host binds every interface. Otherwise it checks IP correctness
// unless host is "localhost", and returns an error if the format or values
// are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

func (p *PeerList) String() string {
	if p == nil {
		return ""
	}
	return strings.Join(*p, ",")
}

// Set appends every non-blank endpoint of a comma separated value.
func (p *PeerList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		*p = append(*p, part)
	}
	return nil
}
