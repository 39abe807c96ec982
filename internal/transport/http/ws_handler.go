package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler lets a client take a quiz over a websocket: the server sends the
// quiz once, then answers every submit frame with a result or error frame.
type WSHandler struct {
	handler  *Handler
	upgrader websocket.Upgrader
}

func NewWSHandler(h *Handler) *WSHandler {
	return &WSHandler{
		handler: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type wsErrorPayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ServeWS upgrades the request and serves submissions for the quiz in the path.
// Lookup failures are reported as plain HTTP errors before the upgrade.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := h.handler.log
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errUnauthenticated.Error()})
		return
	}
	quizID, err := pathQuizID(r)
	if err != nil {
		writeError(w, log, err)
		return
	}
	quiz, err := h.handler.quizzes.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Reads and writes both happen on this goroutine, so writes never race.
	if err := conn.WriteJSON(outboundMessage[quizView]{Type: "quiz", Payload: newQuizView(quiz)}); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("ws read error", zap.Error(err))
			}
			return
		}

		var reply any
		switch inbound.Type {
		case "submit":
			var req submitRequest
			if err := json.Unmarshal(inbound.Payload, &req); err != nil {
				reply = errorFrame(errInvalidBody)
				break
			}
			result, err := h.handler.grade(r.Context(), user, quizID, req)
			if err != nil {
				reply = errorFrame(err)
				break
			}
			reply = outboundMessage[any]{Type: "result", Payload: result}
		default:
			reply = outboundMessage[wsErrorPayload]{Type: "error", Payload: wsErrorPayload{
				Status:  http.StatusBadRequest,
				Message: "unsupported message type",
			}}
		}

		if err := conn.WriteJSON(reply); err != nil {
			log.Debug("ws write error", zap.Error(err))
			return
		}
	}
}

func errorFrame(err error) outboundMessage[wsErrorPayload] {
	status, _ := classify(err)
	return outboundMessage[wsErrorPayload]{Type: "error", Payload: wsErrorPayload{
		Status:  status,
		Message: publicMessage(status, err).Error,
	}}
}
