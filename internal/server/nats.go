package server

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
	"github.com/Morgane2t/decent-workshop-4/pkg/messaging"
	"github.com/Morgane2t/decent-workshop-4/pkg/types"
)

// Server binds the registry service to its NATS request/reply subjects.
type Server struct {
	service *Service
	conn    *nats.Conn
	subs    []*nats.Subscription
}

func NewServer(conn *nats.Conn, service *Service) *Server {
	return &Server{service: service, conn: conn}
}

// Start subscribes the registry subjects. Handlers reply with JSON; a reply is
// always sent so callers never wait out a timeout on a handled request.
func (s *Server) Start() error {
	handlers := map[string]nats.MsgHandler{
		messaging.RegistryRegisterSubject: s.handleRegister,
		messaging.RegistryNodesSubject:    s.handleNodes,
		messaging.RegistryStatusSubject:   s.handleStatus,
	}

	for subject, handler := range handlers {
		sub, err := s.conn.Subscribe(subject, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}

	logger.Info("Registry service listening",
		"subjects", []string{
			messaging.RegistryRegisterSubject,
			messaging.RegistryNodesSubject,
			messaging.RegistryStatusSubject,
		},
	)
	return nil
}

func (s *Server) handleRegister(msg *nats.Msg) {
	var req types.RegisterRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.replyError(msg, fmt.Errorf("parse register request: %w", err))
		return
	}

	resp, err := s.service.RegisterNode(req)
	if err != nil {
		s.replyError(msg, err)
		return
	}

	logger.Info("Registration handled", "node_id", req.NodeID, "status", resp.Status)
	s.reply(msg, resp)
}

func (s *Server) handleNodes(msg *nats.Msg) {
	resp, err := s.service.ListNodes()
	if err != nil {
		s.replyError(msg, err)
		return
	}
	s.reply(msg, resp)
}

func (s *Server) handleStatus(msg *nats.Msg) {
	s.reply(msg, s.service.Status())
}

func (s *Server) reply(msg *nats.Msg, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal reply", err, "subject", msg.Subject)
		return
	}
	if err := msg.Respond(data); err != nil {
		logger.Error("Failed to send reply", err, "subject", msg.Subject)
	}
}

// errorReply unmarshals into the Error field every response type carries.
type errorReply struct {
	Error string `json:"error"`
}

func (s *Server) replyError(msg *nats.Msg, err error) {
	logger.Error("Request handling failed", err, "subject", msg.Subject)
	s.reply(msg, errorReply{Error: err.Error()})
}

// Close unsubscribes all registry subjects.
func (s *Server) Close() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Error("Failed to unsubscribe", err, "subject", sub.Subject)
		}
	}
	s.subs = nil
}
