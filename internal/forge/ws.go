package forge

import (
	"crypto/sha256"
	"encoding/base64"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var logUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The fixture forge is only ever reached from its own pages.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleRunLogStream streams the stored log lines of a workflow run over a
// websocket, one message per line, then closes normally.
func (s *Server) handleRunLogStream(c *gin.Context) {
	run := s.store.Run(c.Param("owner"), c.Param("name"), c.Param("id"))
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	conn, err := logUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("forge: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for _, line := range run.LogLines {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return
		}
	}
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "end of logs"), deadline)
}

// fingerprint derives a stable SHA256 fingerprint string from key material.
func fingerprint(key string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(key)))
	return "SHA256:" + strings.TrimRight(base64.StdEncoding.EncodeToString(sum[:]), "=")
}
