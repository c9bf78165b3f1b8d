package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/pdfchat/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var (
	sharedClient *http.Client
	once         sync.Once
)

// GetClient returns the pooled client every provider shares.
func GetClient() *http.Client {
	once.Do(func() {
		sharedClient = &http.Client{
			Transport: customTransport,
			Timeout:   config.ProviderHTTPTimeout,
		}
	})
	return sharedClient
}
