package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент Paystack Transactions API
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Paystack
func NewClient(baseURL, secretKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// InitializeTransaction создает транзакцию и возвращает ссылку на hosted checkout
func (c *Client) InitializeTransaction(ctx context.Context, in InitializeRequest) (*InitializeResult, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %w", ErrInternal, err)
	}

	var out envelope[InitializeResult]
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}

	if !out.Status || out.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("%w: initialize rejected: %s", ErrInvalidResponse, out.Message)
	}

	c.log.Info("Paystack transaction initialized: reference=%s", in.Reference)
	return &out.Data, nil
}

// VerifyTransaction получает итоговый статус транзакции по референсу
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*Transaction, error) {
	var out envelope[Transaction]
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	if !out.Status {
		return nil, fmt.Errorf("%w: verify rejected: %s", ErrInvalidResponse, out.Message)
	}

	return &out.Data, nil
}

// VerifySignature проверяет заголовок x-paystack-signature:
// hex(HMAC-SHA512(secretKey, body)), сравнение за постоянное время
func (c *Client) VerifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)

	return hmac.Equal(mac.Sum(nil), expected)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrTransactionNotFound
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error("Paystack %s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	return nil
}
