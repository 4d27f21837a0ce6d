package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
)

// webServer creates the http server with the websocket render endpoint,
// the image of the last render and a plain text index.
func webServer(port int, rs *renderService) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           newMux(rs),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", port)
	return srv
}

func newMux(rs *renderService) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(rs))
	mux.HandleFunc("/image.png", imageHandler(rs))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintln(w, "mandelbrot render server: send render requests to /ws, fetch the result from /image.png")
	})
	return mux
}

func imageHandler(rs *renderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img := rs.lastImage()
		if img == nil {
			http.Error(w, "nothing rendered yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}
}

// websocketHandler handles the http ws endpoint.
// Each text message is one render request; each gets exactly one response message.
func websocketHandler(rs *renderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		log.Printf("got connection from: %s", r.RemoteAddr)
		if err := serveConn(r.Context(), c, rs); err != nil {
			log.Printf("connection %s: %v", r.RemoteAddr, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}

func serveConn(ctx context.Context, c *websocket.Conn, rs *renderService) error {
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		var req renderRequest
		var resp renderResponse
		if err := sonic.Unmarshal(data, &req); err != nil {
			resp.Error = fmt.Sprintf("bad request: %v", err)
		} else {
			resp = rs.render(req)
		}

		out, err := sonic.Marshal(resp)
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		if err := c.Write(ctx, websocket.MessageText, out); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
}
