package http

import (
	"encoding/json"
	"time"

	"github.com/chatrelay/chatrelay-server/internal/core"
	"github.com/chatrelay/chatrelay-server/internal/proto"
	"github.com/chatrelay/chatrelay-server/internal/store"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.ID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "id is required"}, nil
		}
		return &core.Command{
			Kind:  core.CommandJoin,
			ID:    join.ID,
			Color: join.Color,
		}, nil, nil
	case proto.InboundTypeMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Text == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Text: msg.Text,
		}, nil, nil
	case proto.InboundTypeTypingStart:
		return &core.Command{Kind: core.CommandTypingStart}, nil, nil
	case proto.InboundTypeTypingStop:
		return &core.Command{Kind: core.CommandTypingStop}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromNotification(n *core.Notification) proto.Outbound {
	switch n.Kind {
	case core.NotifyEvent:
		return proto.Outbound{
			Type: proto.OutboundTypeEvent,
			Data: eventToData(n.Event),
		}
	case core.NotifyHistory:
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: proto.HistoryData{Events: eventsToData(n.Events)},
		}
	case core.NotifyPresence:
		return proto.Outbound{
			Type: proto.OutboundTypePresence,
			Data: proto.PresenceData{Participants: participantsToData(n.Participants)},
		}
	case core.NotifyTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeTyping,
			Data: proto.TypingData{ParticipantID: n.TypingID, Typing: n.Typing},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func eventToData(ev store.Event) proto.EventData {
	return proto.EventData{
		Type:             string(ev.Type),
		Message:          ev.Message,
		Timestamp:        ev.Timestamp.Format(time.RFC3339Nano),
		ParticipantID:    ev.ParticipantID,
		ParticipantColor: ev.ParticipantColor,
	}
}

func eventsToData(events []store.Event) []proto.EventData {
	out := make([]proto.EventData, 0, len(events))
	for _, ev := range events {
		out = append(out, eventToData(ev))
	}
	return out
}

func participantsToData(participants []core.Participant) []proto.ParticipantData {
	out := make([]proto.ParticipantData, 0, len(participants))
	for _, p := range participants {
		out = append(out, proto.ParticipantData{
			ID:       p.ID,
			Color:    p.Color,
			JoinedAt: p.JoinedAt.Format(time.RFC3339Nano),
		})
	}
	return out
}
