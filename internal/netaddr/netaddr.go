package netaddr

import (
	"context"
	"fmt"
	"net"
	"net/http"

	json "github.com/goccy/go-json"
)

const ipifyURL = "https://api.ipify.org?format=json"

// LocalIP returns the address of the interface used for outbound traffic.
// Dialing UDP sends no packets.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", fmt.Errorf("failed to determine local ip: %w", err)
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

// ExternalIP asks ipify for the public address. url may be empty.
func ExternalIP(ctx context.Context, client *http.Client, url string) (string, error) {
	if url == "" {
		url = ipifyURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to determine external ip: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to determine external ip: status %d", resp.StatusCode)
	}
	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to parse external ip: %w", err)
	}
	return body.IP, nil
}
