package xmpp

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"jabbot/internal/core/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	subprotocol          = "xmpp"
	dialTimeout          = 15 * time.Second
	writeTimeout         = 10 * time.Second
	pingInterval         = 30 * time.Second
	reconnectBaseDelay   = 5 * time.Second
	maxReconnectAttempts = 10
)

var (
	errAuthFailed   = errors.New("authentication failed")
	errNotConnected = errors.New("not connected")
)

// Handler receives lifecycle and stanza events from the stream.
type Handler interface {
	HandleEstablished(ctx context.Context)
	HandleMessage(ctx context.Context, message *domain.Message)
	HandlePresence(ctx context.Context, presence *domain.Presence)
	HandleLost()
}

// Client speaks XMPP over a websocket. It dials, authenticates with SASL
// PLAIN, binds a resource and then feeds decoded stanzas to its Handler.
// Outbound traffic goes through the port.MessageSender and port.RoomJoiner
// implementations.
type Client struct {
	url      string
	jid      string
	password string
	resource string

	handler  Handler
	conn     *websocket.Conn
	boundJID string
	writeMu  *sync.Mutex
}

func NewClient(url string, jid string, password string, resource string) *Client {
	return &Client{
		url:      url,
		jid:      jid,
		password: password,
		resource: resource,
		writeMu:  &sync.Mutex{},
	}
}

// SetHandler wires the event consumer. Must be called before Run.
func (c *Client) SetHandler(handler Handler) {
	c.handler = handler
}

// Run serves the connection until ctx is canceled, redialing after failures
// with a linear backoff. Rejected credentials and exhausted retries are
// terminal.
func (c *Client) Run(ctx context.Context) error {
	attempts := 0

	for {
		established, err := c.serve(ctx)

		if established {
			c.handler.HandleLost()
			attempts = 0
		}

		if ctx.Err() != nil {
			return nil
		}

		if errors.Is(err, errAuthFailed) {
			return err
		}

		attempts++
		if attempts > maxReconnectAttempts {
			return fmt.Errorf("giving up after %d failed connection attempts: %w", attempts, err)
		}

		delay := time.Duration(attempts) * reconnectBaseDelay
		log.Warn().Err(err).Int("attempt", attempts).Dur("delay", delay).Msg("connection lost, redialing")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil
		}
	}
}

func (c *Client) serve(ctx context.Context) (bool, error) {
	dialer := &websocket.Dialer{
		HandshakeTimeout: dialTimeout,
		Subprotocols:     []string{subprotocol},
	}

	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("failed to dial %s, status %s: %w", c.url, resp.Status, err)
		}
		return false, fmt.Errorf("failed to dial %s: %w", c.url, err)
	}

	c.writeMu.Lock()
	c.conn = conn
	c.writeMu.Unlock()

	defer func() {
		c.writeMu.Lock()
		c.conn = nil
		c.writeMu.Unlock()
		conn.Close()
	}()

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Unsticks any blocked read, handshake reads included, once the
	// context ends.
	go func() {
		<-serveCtx.Done()
		_ = c.write(&closeFrame{})
		conn.Close()
	}()

	if err := c.handshake(); err != nil {
		return false, err
	}

	log.Info().Str("jid", c.boundJID).Msg("stream established and resource bound")

	established := &sync.WaitGroup{}
	established.Add(1)
	go func() {
		defer established.Done()
		c.handler.HandleEstablished(serveCtx)
	}()
	go c.pingLoop(serveCtx)

	err = c.readLoop(serveCtx)

	// HandleLost must not overtake a still-running HandleEstablished.
	// Joins abort on cancel, so this wait is bounded.
	cancel()
	established.Wait()

	return true, err
}

func (c *Client) handshake() error {
	if err := c.write(&openFrame{To: domainOf(c.jid), Version: "1.0"}); err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	feats, err := c.awaitFeatures()
	if err != nil {
		return err
	}

	if feats.Mechanisms == nil || !slices.Contains(feats.Mechanisms.Mechanism, "PLAIN") {
		return errors.New("server offers no PLAIN mechanism")
	}

	if err := c.authenticate(); err != nil {
		return err
	}

	// Authentication resets the stream.
	if err := c.write(&openFrame{To: domainOf(c.jid), Version: "1.0"}); err != nil {
		return fmt.Errorf("failed to reopen stream: %w", err)
	}

	feats, err = c.awaitFeatures()
	if err != nil {
		return err
	}

	if feats.Bind == nil {
		return errors.New("server does not offer resource binding")
	}

	if err := c.bindResource(); err != nil {
		return err
	}

	return c.write(&presence{})
}

func (c *Client) awaitFeatures() (*features, error) {
	for {
		name, data, err := c.read()
		if err != nil {
			return nil, err
		}

		switch name {
		case "open":
			continue
		case "features":
			var feats features
			if err := xml.Unmarshal(data, &feats); err != nil {
				return nil, fmt.Errorf("failed to decode stream features: %w", err)
			}
			return &feats, nil
		default:
			return nil, fmt.Errorf("unexpected element %q during stream setup", name)
		}
	}
}

func (c *Client) authenticate() error {
	payload := base64.StdEncoding.EncodeToString([]byte("\x00" + localOf(c.jid) + "\x00" + c.password))

	if err := c.write(&saslAuth{Mechanism: "PLAIN", Payload: payload}); err != nil {
		return fmt.Errorf("failed to send credentials: %w", err)
	}

	name, _, err := c.read()
	if err != nil {
		return err
	}

	if name != "success" {
		return fmt.Errorf("%w: server replied with %s", errAuthFailed, name)
	}

	return nil
}

func (c *Client) bindResource() error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	request := &iq{Type: "set", ID: id.String(), Bind: &bind{Resource: c.resource}}
	if err := c.write(request); err != nil {
		return fmt.Errorf("failed to request resource bind: %w", err)
	}

	for {
		name, data, err := c.read()
		if err != nil {
			return err
		}

		if name != "iq" {
			log.Debug().Str("element", name).Msg("skipping element while binding")
			continue
		}

		var response iq
		if err := xml.Unmarshal(data, &response); err != nil {
			return fmt.Errorf("failed to decode bind result: %w", err)
		}

		if response.Type != "result" || response.Bind == nil {
			return errors.New("resource bind rejected by server")
		}

		c.boundJID = response.Bind.JID
		return nil
	}
}

func (c *Client) readLoop(ctx context.Context) error {
	for {
		name, data, err := c.read()
		if err != nil {
			return fmt.Errorf("stream read failed: %w", err)
		}

		switch name {
		case "message":
			c.dispatchMessage(ctx, data)
		case "presence":
			c.dispatchPresence(ctx, data)
		case "iq":
			c.answerPing(data)
		case "close":
			return errors.New("stream closed by server")
		default:
			log.Debug().Str("element", name).Msg("ignoring unhandled element")
		}
	}
}

func (c *Client) read() (string, []byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return "", nil, err
	}

	var probe struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(data, &probe); err != nil {
		return "", nil, fmt.Errorf("failed to parse frame: %w", err)
	}

	return probe.XMLName.Local, data, nil
}

func (c *Client) dispatchMessage(ctx context.Context, data []byte) {
	var msg message
	if err := xml.Unmarshal(data, &msg); err != nil {
		log.Warn().Err(err).Msg("failed to decode message stanza")
		return
	}

	if msg.Body == "" {
		return
	}

	var inbound *domain.Message

	switch msg.Type {
	case "groupchat":
		inbound = &domain.Message{
			Kind:   domain.Group,
			Sender: domain.Sender{Address: bareJID(msg.From), Nickname: resourcePart(msg.From)},
			Body:   msg.Body,
		}
	case "chat", "normal", "":
		inbound = &domain.Message{
			Kind:   domain.Direct,
			Sender: domain.Sender{Address: bareJID(msg.From)},
			Body:   msg.Body,
		}
	default:
		return
	}

	// Handlers can run for minutes, the read loop must not wait on them.
	go c.handler.HandleMessage(ctx, inbound)
}

func (c *Client) dispatchPresence(ctx context.Context, data []byte) {
	var pres presence
	if err := xml.Unmarshal(data, &pres); err != nil {
		log.Warn().Err(err).Msg("failed to decode presence stanza")
		return
	}

	nickname := resourcePart(pres.From)
	if nickname == "" {
		return
	}

	var online bool
	switch pres.Type {
	case "":
		online = true
	case "unavailable":
		online = false
	default:
		return
	}

	c.handler.HandlePresence(ctx, &domain.Presence{
		Room:     bareJID(pres.From),
		Nickname: nickname,
		Online:   online,
	})
}

// answerPing keeps the server from timing out the session (XEP-0199).
func (c *Client) answerPing(data []byte) {
	var request iq
	if err := xml.Unmarshal(data, &request); err != nil {
		return
	}

	if request.Type != "get" || request.Ping == nil {
		return
	}

	if err := c.write(&iq{Type: "result", ID: request.ID, To: request.From}); err != nil {
		log.Warn().Err(err).Msg("failed to answer ping")
	}
}

// Send delivers a chat or groupchat message to the target address.
func (c *Client) Send(_ context.Context, target string, body string, kind domain.Kind) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	msgType := "chat"
	if kind == domain.Group {
		msgType = "groupchat"
	}

	return c.write(&message{Type: msgType, To: target, ID: id.String(), Body: body})
}

// JoinRoom announces into a room under the given nickname, asking the room
// to replay no history.
func (c *Client) JoinRoom(_ context.Context, room string, nickname string) error {
	return c.write(&presence{
		To:  room + "/" + nickname,
		MUC: &mucX{History: &history{MaxStanzas: 0}},
	})
}

func (c *Client) LeaveRoom(_ context.Context, room string, nickname string) error {
	return c.write(&presence{Type: "unavailable", To: room + "/" + nickname})
}

func (c *Client) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			if c.conn != nil {
				_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			}
			c.writeMu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(v any) error {
	buf, err := xml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.conn == nil {
		return errNotConnected
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.TextMessage, buf)
}
