package textmagic

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

func unmarshal(body []byte, v any, cmd string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s response: %w", cmd, err)
	}
	return nil
}

// The gateway is loose with scalar types: numbers arrive as JSON numbers
// or as digit strings depending on gateway version, and timestamps are
// epoch seconds in either form. These types absorb both.

type apiFloat float64

func (f *apiFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing %q as number: %w", s, err)
	}
	*f = apiFloat(v)
	return nil
}

type apiInt int

func (i *apiInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*i = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parsing %q as integer: %w", s, err)
	}
	*i = apiInt(v)
	return nil
}

// apiTime is an epoch-seconds timestamp. Absent, null and zero values all
// decode to the zero time.
type apiTime time.Time

func (t *apiTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" || s == "0" {
		*t = apiTime(time.Time{})
		return nil
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing %q as epoch seconds: %w", s, err)
	}
	*t = apiTime(time.Unix(secs, 0))
	return nil
}

// AccountInfo is the shaped account command response.
type AccountInfo struct {
	Balance float64
}

func decodeAccount(body []byte) (*AccountInfo, error) {
	var raw struct {
		Balance apiFloat `json:"balance"`
	}
	if err := unmarshal(body, &raw, "account"); err != nil {
		return nil, err
	}
	return &AccountInfo{Balance: float64(raw.Balance)}, nil
}

// SendResult is the shaped send command response. The gateway reports a
// message id per destination phone; the map here is inverted (phone to id)
// for lookup by destination.
type SendResult struct {
	IDs        []string          // message ids, sorted
	Phones     map[string]string // phone number -> message id
	SentText   string
	PartsCount int
}

// ID returns the message id of a single-destination send (the first id in
// sorted order otherwise). Callers that sent to one phone use this instead
// of indexing a one-entry map.
func (r *SendResult) ID() string {
	if len(r.IDs) == 0 {
		return ""
	}
	return r.IDs[0]
}

// IDFor returns the message id assigned to the given destination phone.
func (r *SendResult) IDFor(phone string) string {
	return r.Phones[phone]
}

func decodeSend(body []byte) (*SendResult, error) {
	var raw struct {
		MessageID  map[string]string `json:"message_id"`
		SentText   string            `json:"sent_text"`
		PartsCount apiInt            `json:"parts_count"`
	}
	if err := unmarshal(body, &raw, "send"); err != nil {
		return nil, err
	}
	result := &SendResult{
		IDs:        make([]string, 0, len(raw.MessageID)),
		Phones:     make(map[string]string, len(raw.MessageID)),
		SentText:   raw.SentText,
		PartsCount: int(raw.PartsCount),
	}
	for id, phone := range raw.MessageID {
		result.IDs = append(result.IDs, id)
		result.Phones[phone] = id
	}
	sort.Strings(result.IDs)
	return result, nil
}

// MessageStatus is the delivery state of one sent message.
type MessageStatus struct {
	Text          string
	Status        string
	ReplyNumber   string
	CreatedTime   time.Time
	CompletedTime time.Time // zero while delivery is pending
	CreditsCost   float64
}

// MessageStatuses maps message id to its status.
type MessageStatuses map[string]MessageStatus

// Single returns the sole entry of a one-id lookup.
func (m MessageStatuses) Single() (MessageStatus, bool) {
	if len(m) != 1 {
		return MessageStatus{}, false
	}
	for _, status := range m {
		return status, true
	}
	return MessageStatus{}, false
}

func decodeMessageStatus(body []byte) (MessageStatuses, error) {
	var raw map[string]struct {
		Text          string   `json:"text"`
		Status        string   `json:"status"`
		ReplyNumber   string   `json:"reply_number"`
		CreatedTime   apiTime  `json:"created_time"`
		CompletedTime apiTime  `json:"completed_time"`
		CreditsCost   apiFloat `json:"credits_cost"`
	}
	if err := unmarshal(body, &raw, "message_status"); err != nil {
		return nil, err
	}
	statuses := make(MessageStatuses, len(raw))
	for id, s := range raw {
		statuses[id] = MessageStatus{
			Text:          s.Text,
			Status:        s.Status,
			ReplyNumber:   s.ReplyNumber,
			CreatedTime:   time.Time(s.CreatedTime),
			CompletedTime: time.Time(s.CompletedTime),
			CreditsCost:   float64(s.CreditsCost),
		}
	}
	return statuses, nil
}

// InboundMessage is one received reply.
type InboundMessage struct {
	MessageID string
	From      string
	Text      string
	Timestamp time.Time
}

// ReceiveResult is the shaped receive command response.
type ReceiveResult struct {
	Messages   []InboundMessage
	MessageIDs []string // ids of Messages, sorted
	Unread     int
}

func decodeReceive(body []byte) (*ReceiveResult, error) {
	var raw struct {
		Messages []struct {
			MessageID string  `json:"message_id"`
			From      string  `json:"from"`
			Text      string  `json:"text"`
			Timestamp apiTime `json:"timestamp"`
		} `json:"messages"`
		Unread apiInt `json:"unread"`
	}
	if err := unmarshal(body, &raw, "receive"); err != nil {
		return nil, err
	}
	result := &ReceiveResult{
		Messages:   make([]InboundMessage, 0, len(raw.Messages)),
		MessageIDs: make([]string, 0, len(raw.Messages)),
		Unread:     int(raw.Unread),
	}
	for _, m := range raw.Messages {
		result.Messages = append(result.Messages, InboundMessage{
			MessageID: m.MessageID,
			From:      m.From,
			Text:      m.Text,
			Timestamp: time.Time(m.Timestamp),
		})
		result.MessageIDs = append(result.MessageIDs, m.MessageID)
	}
	sort.Strings(result.MessageIDs)
	return result, nil
}

// DeleteResult is the shaped delete_reply command response.
type DeleteResult struct {
	Deleted []string
}

func decodeDeleteReply(body []byte) (*DeleteResult, error) {
	var raw struct {
		Deleted []string `json:"deleted"`
	}
	if err := unmarshal(body, &raw, "delete_reply"); err != nil {
		return nil, err
	}
	return &DeleteResult{Deleted: raw.Deleted}, nil
}

// NumberInfo is the price and country of one checked phone number.
type NumberInfo struct {
	Price   float64
	Country string
}

// NumberInfos maps phone number to its info.
type NumberInfos map[string]NumberInfo

// Single returns the sole entry of a one-phone lookup.
func (n NumberInfos) Single() (NumberInfo, bool) {
	if len(n) != 1 {
		return NumberInfo{}, false
	}
	for _, info := range n {
		return info, true
	}
	return NumberInfo{}, false
}

func decodeCheckNumber(body []byte) (NumberInfos, error) {
	var raw map[string]struct {
		Price   apiFloat `json:"price"`
		Country string   `json:"country"`
	}
	if err := unmarshal(body, &raw, "check_number"); err != nil {
		return nil, err
	}
	infos := make(NumberInfos, len(raw))
	for phone, info := range raw {
		infos[phone] = NumberInfo{Price: float64(info.Price), Country: info.Country}
	}
	return infos, nil
}
