package skadmin

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"skconsole/config"
)

const (
	contentType     = "application/json; charset=utf-8"
	requestIdHeader = "X-Request-Id"
	latencyEnvVar   = "SKCONSOLE_DEBUG_LATENCY_MS"
)

type DefaultSkClient struct {
	baseUrl string
	client  *http.Client
}

func (s *DefaultSkClient) do(
	method string,
	path string,
	query url.Values,
	body any,
	out any,
) error {
	requestId := uuid.NewString()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "unable to encode request body of %s %s", method, path)
		}
		reader = bytes.NewReader(data)
	}

	target := s.baseUrl + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return errors.Wrapf(err, "unable to create request %s %s", method, path)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIdHeader, requestId)

	log.Debug("Registry request", "method", method, "path", path, "requestId", requestId)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error("Registry unreachable", "method", method, "path", path, "requestId", requestId, "err", err)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("Registry rejected request",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"requestId", requestId,
		)
		return &RegistryError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	log.Debug("Registry response", "method", method, "path", path, "status", resp.StatusCode, "requestId", requestId)

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if raw, ok := out.(*json.RawMessage); ok {
			*raw = json.RawMessage("null")
			return nil
		}
		return errors.Errorf("%s %s: registry returned an empty body", method, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "unable to decode response of %s %s", method, path)
	}
	return nil
}

// async runs fn on its own goroutine. Exactly one of the returned channels
// receives a value, both are buffered so nobody has to listen.
func async[T any](fn func() (T, error)) (chan T, chan error) {
	resultChan := make(chan T, 1)
	errChan := make(chan error, 1)
	go func() {
		maybeIntroduceLatency()
		result, err := fn()
		if err != nil {
			errChan <- err
			return
		}
		resultChan <- result
	}()
	return resultChan, errChan
}

func subjectPath(subject string) string {
	return "/v1/subjects/" + url.PathEscape(subject)
}

func versionPath(subject string, version int) string {
	return subjectPath(subject) + "/versions/" + strconv.Itoa(version)
}

func compatibilityPath(subject string) string {
	if subject == "" {
		return "/v1/compatibility"
	}
	return "/v1/compatibility/" + url.PathEscape(subject)
}

func maybeIntroduceLatency() {
	if ms, err := strconv.Atoi(os.Getenv(latencyEnvVar)); err == nil && ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}

func createHttpClient(registry *config.RegistryConfig) (*http.Client, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: registry.TLSConfig.SkipVerify,
	}

	if registry.TLSConfig.CACertPath != "" {
		caCert, err := os.ReadFile(registry.TLSConfig.CACertPath)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read CA cert file")
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if registry.TLSConfig.ClientCert != "" && registry.TLSConfig.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(registry.TLSConfig.ClientCert, registry.TLSConfig.ClientKey)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load client certificate")
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsConfig,
	}

	if registry.Username != "" {
		auth := registry.Username + ":" + registry.Password
		transport = roundTripperWithAuth{
			baseTransport: transport,
			authHeader:    "Basic " + base64.StdEncoding.EncodeToString([]byte(auth)),
		}
	}

	return &http.Client{Transport: transport}, nil
}

type roundTripperWithAuth struct {
	baseTransport http.RoundTripper
	authHeader    string
}

// RoundTrip adds the Authorization header to every request
func (r roundTripperWithAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", r.authHeader)
	return r.baseTransport.RoundTrip(req)
}

func New(registryConfig *config.RegistryConfig) (*DefaultSkClient, error) {
	if registryConfig == nil {
		return nil, errors.New("no registry configured")
	}
	client, err := createHttpClient(registryConfig)
	if err != nil {
		return nil, err
	}
	return &DefaultSkClient{
		baseUrl: strings.TrimSuffix(registryConfig.Url, "/"),
		client:  client,
	}, nil
}
