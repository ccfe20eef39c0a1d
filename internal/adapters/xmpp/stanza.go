package xmpp

import (
	"encoding/xml"
	"strings"
)

// Wire types for the websocket subprotocol framing (RFC 7395): every
// websocket frame carries exactly one XML element, stanzas are qualified by
// the jabber:client namespace and stream setup runs over open/close frames
// instead of stream headers.

type openFrame struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:xmpp-framing open"`
	To      string   `xml:"to,attr,omitempty"`
	From    string   `xml:"from,attr,omitempty"`
	ID      string   `xml:"id,attr,omitempty"`
	Version string   `xml:"version,attr,omitempty"`
}

type closeFrame struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:xmpp-framing close"`
}

type features struct {
	XMLName    xml.Name    `xml:"features"`
	Mechanisms *mechanisms `xml:"urn:ietf:params:xml:ns:xmpp-sasl mechanisms"`
	Bind       *struct{}   `xml:"urn:ietf:params:xml:ns:xmpp-bind bind"`
}

type mechanisms struct {
	Mechanism []string `xml:"mechanism"`
}

type saslAuth struct {
	XMLName   xml.Name `xml:"urn:ietf:params:xml:ns:xmpp-sasl auth"`
	Mechanism string   `xml:"mechanism,attr"`
	Payload   string   `xml:",chardata"`
}

type iq struct {
	XMLName xml.Name  `xml:"jabber:client iq"`
	Type    string    `xml:"type,attr"`
	ID      string    `xml:"id,attr,omitempty"`
	To      string    `xml:"to,attr,omitempty"`
	From    string    `xml:"from,attr,omitempty"`
	Bind    *bind     `xml:"urn:ietf:params:xml:ns:xmpp-bind bind,omitempty"`
	Ping    *struct{} `xml:"urn:xmpp:ping ping,omitempty"`
}

type bind struct {
	Resource string `xml:"resource,omitempty"`
	JID      string `xml:"jid,omitempty"`
}

type message struct {
	XMLName xml.Name `xml:"jabber:client message"`
	Type    string   `xml:"type,attr,omitempty"`
	From    string   `xml:"from,attr,omitempty"`
	To      string   `xml:"to,attr,omitempty"`
	ID      string   `xml:"id,attr,omitempty"`
	Body    string   `xml:"body,omitempty"`
}

type presence struct {
	XMLName xml.Name `xml:"jabber:client presence"`
	Type    string   `xml:"type,attr,omitempty"`
	From    string   `xml:"from,attr,omitempty"`
	To      string   `xml:"to,attr,omitempty"`
	ID      string   `xml:"id,attr,omitempty"`
	MUC     *mucX    `xml:"http://jabber.org/protocol/muc x,omitempty"`
}

type mucX struct {
	History *history `xml:"history,omitempty"`
}

// History with maxstanzas zero asks the room to replay nothing on join.
type history struct {
	MaxStanzas int `xml:"maxstanzas,attr"`
}

// bareJID strips the resource from a full JID.
func bareJID(jid string) string {
	if i := strings.Index(jid, "/"); i >= 0 {
		return jid[:i]
	}
	return jid
}

// resourcePart returns the resource of a full JID, the room nickname for
// occupant JIDs.
func resourcePart(jid string) string {
	if i := strings.Index(jid, "/"); i >= 0 {
		return jid[i+1:]
	}
	return ""
}

func localOf(jid string) string {
	bare := bareJID(jid)
	if i := strings.Index(bare, "@"); i >= 0 {
		return bare[:i]
	}
	return bare
}

func domainOf(jid string) string {
	bare := bareJID(jid)
	if i := strings.Index(bare, "@"); i >= 0 {
		return bare[i+1:]
	}
	return bare
}
