package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// ChartLoader fetches the latest persisted options for a board when its room
// first opens. ChartSaver persists them; the hub calls it from its own
// goroutine, never from a handler.
type (
	ChartLoader func(boardID string) (json.RawMessage, error)
	ChartSaver  func(boardID string, options json.RawMessage) error
)

const autosaveInterval = 30 * time.Second

type Room struct {
	boardID  string
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	state    *ChartState
}

func NewRoom(boardID string, state *ChartState) *Room {
	return &Room{
		boardID:  boardID,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
		state:    state,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // boardID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	loader     ChartLoader
	saver      ChartSaver
}

func NewHub(loader ChartLoader, saver ChartSaver) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		loader:     loader,
		saver:      saver,
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(autosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.saveDirtyRooms()
		case <-h.stop:
			h.saveDirtyRooms()
			close(h.done)
			return
		}
	}
}

// Stop flushes every dirty room to storage and shuts the hub loop down.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		state, err := h.loadState(client.BoardID)
		if err != nil {
			h.mu.Unlock()
			slog.Error("load chart state", "error", err, "board", client.BoardID)
			client.Send(errorMessage("failed to load board"))
			close(client.send)
			return
		}
		room = NewRoom(client.BoardID, state)
		h.rooms[client.BoardID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Welcome the new client with the authoritative chart state.
	if msg := welcomeMessage(room, client.ClientID); msg != nil {
		client.Send(msg)
	}

	// Send current presence state to new client
	stateMsg := room.presence.StateMessage()
	if stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.BoardID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.Remove(client.UserID)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.BoardID)
	}
	h.mu.Unlock()

	if empty {
		h.saveRoom(room)
	}

	// Broadcast leave to remaining clients
	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.BoardID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeChartSubmit:
		h.handleChartSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.UserID, &presence)

	// Broadcast to other clients in room
	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.BoardID, outMsg, sender.ClientID)
}

func (h *Hub) handleChartSubmit(sender *Client, msg *Message) {
	var submit UpdateSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid chart submit payload", "error", err)
		return
	}

	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	serverSeq, err := room.state.ApplyUpdate(submit.Update)
	if err != nil {
		nackPayload, _ := json.Marshal(UpdateNackPayload{
			UpdateID: submit.Update.ID,
			Reason:   err.Error(),
		})
		sender.Send(&Message{Type: TypeChartNack, Payload: nackPayload})
		return
	}

	ackPayload, _ := json.Marshal(UpdateAckPayload{
		UpdateID:        submit.Update.ID,
		ServerSeq:       serverSeq,
		ServerTimestamp: ServerTimestamp(),
	})
	sender.Send(&Message{Type: TypeChartAck, Payload: ackPayload})

	broadcastPayload, _ := json.Marshal(UpdateBroadcastPayload{
		Update:    submit.Update,
		UserID:    sender.UserID,
		ServerSeq: serverSeq,
	})
	outMsg := &Message{
		Type:    TypeChartBroadcast,
		UserID:  sender.UserID,
		Seq:     serverSeq,
		Payload: broadcastPayload,
	}
	h.broadcastToRoom(sender.BoardID, outMsg, sender.ClientID)
}

func (h *Hub) broadcastToRoom(boardID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[boardID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *Hub) loadState(boardID string) (*ChartState, error) {
	raw, err := h.loader(boardID)
	if err != nil {
		return nil, err
	}
	return NewChartState(raw)
}

func (h *Hub) saveDirtyRooms() {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		if room.state.Dirty() {
			rooms = append(rooms, room)
		}
	}
	h.mu.RUnlock()

	for _, room := range rooms {
		h.saveRoom(room)
	}
}

func (h *Hub) saveRoom(room *Room) {
	if !room.state.Dirty() {
		return
	}
	raw, err := room.state.Options()
	if err != nil {
		slog.Error("serialize chart state", "error", err, "board", room.boardID)
		return
	}
	if err := h.saver(room.boardID, raw); err != nil {
		slog.Error("save chart state", "error", err, "board", room.boardID)
		return
	}
	room.state.MarkSaved()
	slog.Info("chart state saved", "board", room.boardID)
}

func welcomeMessage(room *Room, clientID string) *Message {
	options, err := room.state.Options()
	if err != nil {
		slog.Error("serialize chart state", "error", err, "board", room.boardID)
		return nil
	}
	payload, _ := json.Marshal(WelcomePayload{
		BoardID:   room.boardID,
		ClientID:  clientID,
		Options:   options,
		ServerSeq: room.state.ServerSeq(),
	})
	return &Message{Type: TypeWelcome, Payload: payload}
}

func errorMessage(reason string) *Message {
	payload, _ := json.Marshal(map[string]string{"reason": reason})
	return &Message{Type: TypeError, Payload: payload}
}
