package actions

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
)

// Sender delivers a MIDI message to a named output port
type Sender interface {
	Send(port string, msg midi.Message) error
}

// MidiHandler sends a single MIDI message described as JSON
type MidiHandler struct {
	sender Sender

	// DefaultPort is used when the action names no port
	DefaultPort string
}

// MidiActionData is the JSON stored in the Code field of a MIDI action
type MidiActionData struct {
	Port    string `json:"port"`
	MsgType string `json:"msg_type"` // note_on, note_off, cc, pc, sysex
	Channel int    `json:"channel"`  // 1-16
	Number  int    `json:"number"`   // note or controller
	Value   int    `json:"value"`    // velocity or controller value
	Program int    `json:"program"`
	SysEx   string `json:"sysex"` // hex, F0/F7 optional
}

func NewMidiHandler(sender Sender) *MidiHandler {
	return &MidiHandler{sender: sender}
}

func (h *MidiHandler) IsSupported() bool { return h.sender != nil }

func (h *MidiHandler) Execute(_ context.Context, code string) (string, error) {
	data, msg, err := h.parse(code)
	if err != nil {
		return "", err
	}
	if h.sender == nil {
		return "", fmt.Errorf("no MIDI output available")
	}
	if err := h.sender.Send(data.Port, msg); err != nil {
		return "", fmt.Errorf("send to %q failed: %w", data.Port, err)
	}
	return fmt.Sprintf("Sent %s to %s", msg, data.Port), nil
}

func (h *MidiHandler) Validate(code string) error {
	_, _, err := h.parse(code)
	return err
}

func (h *MidiHandler) parse(code string) (MidiActionData, midi.Message, error) {
	var data MidiActionData
	if err := json.Unmarshal([]byte(code), &data); err != nil {
		return data, nil, fmt.Errorf("invalid MIDI action data: %w", err)
	}
	if data.Port == "" {
		data.Port = h.DefaultPort
	}
	if data.Port == "" {
		return data, nil, fmt.Errorf("no port specified")
	}

	channel := uint8(data.Channel - 1)
	if data.Channel < 1 || data.Channel > 16 {
		channel = 0
	}
	for _, v := range []int{data.Number, data.Value, data.Program} {
		if v < 0 || v > 127 {
			return data, nil, fmt.Errorf("data byte %d outside 0..127", v)
		}
	}

	switch data.MsgType {
	case "note_on":
		return data, midi.NoteOn(channel, uint8(data.Number), uint8(data.Value)), nil
	case "note_off":
		return data, midi.NoteOff(channel, uint8(data.Number)), nil
	case "cc":
		return data, midi.ControlChange(channel, uint8(data.Number), uint8(data.Value)), nil
	case "pc":
		return data, midi.ProgramChange(channel, uint8(data.Program)), nil
	case "sysex":
		payload, err := parseSysEx(data.SysEx)
		if err != nil {
			return data, nil, err
		}
		return data, midi.SysEx(payload), nil
	}
	return data, nil, fmt.Errorf("unknown message type: %s", data.MsgType)
}

// parseSysEx decodes "F0 00 20 29 F7" style hex into the payload between F0 and F7.
func parseSysEx(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid sysex hex: %w", err)
	}
	if len(raw) > 0 && raw[0] == 0xF0 {
		raw = raw[1:]
	}
	if len(raw) > 0 && raw[len(raw)-1] == 0xF7 {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty sysex")
	}
	for _, b := range raw {
		if b > 0x7F {
			return nil, fmt.Errorf("sysex byte %#x has the high bit set", b)
		}
	}
	return raw, nil
}
