package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/ikeydoherty/budgie-rd/compositor"
	"github.com/ikeydoherty/budgie-rd/config"
	"github.com/ikeydoherty/budgie-rd/events"
	"github.com/ikeydoherty/budgie-rd/output"
	"github.com/ikeydoherty/budgie-rd/surface"
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
)

// Server is the wlroots side of the compositor. It turns wlroots signals
// into notifications for the compositor core and applies the core's draw
// order to the wlroots scene graph. Everything here runs on the Wayland
// event loop, which is also the compositor's control goroutine.
type Server struct {
	conf *config.Config

	display     wlroots.Display
	backend     wlroots.Backend
	renderer    wlroots.Renderer
	allocator   wlroots.Allocator
	scene       wlroots.Scene
	sceneLayout wlroots.SceneOutputLayout

	xdgShell wlroots.XDGShell

	cursor      wlroots.Cursor
	cursorMgr   wlroots.XCursorManager
	cursorImage events.CursorImage[wlroots.Surface]

	seat      wlroots.Seat
	keyboards []*Keyboard

	outputLayout wlroots.OutputLayout
	outputs      []*wlroots.Output

	window     *output.Window[wlroots.Surface]
	compositor *compositor.Controller[wlroots.Surface]
	queue      *events.Queue[wlroots.Surface]
	redraw     <-chan struct{}
	stopped    atomic.Bool
}

// dispatchTimeout bounds how long the event loop sleeps without serving
// the notification queue.
const dispatchTimeout = 10 * time.Millisecond

type Keyboard struct {
	dev wlroots.InputDevice
}

func (server *Server) notify(n events.Notification[wlroots.Surface]) {
	if err := n.Apply(server.compositor); err != nil {
		logrus.WithError(err).WithField("notification", n).Debugln("Notification skipped")
	}
}

func (server *Server) handleNewXDGSurface(xdgSurface wlroots.XDGSurface) {
	/* This event is raised when wlr_xdg_shell receives a new xdg xdgSurface from a
	 * client, either a toplevel (application window) or popup. */

	logrus.WithField("surface", xdgSurface).Debugln("New surface inbound")

	if xdgSurface.Role() == wlroots.XDGSurfaceRolePopup {
		// Popups are drawn as part of their parent's tree and never
		// tracked on their own
		parent := xdgSurface.Popup().Parent()
		if parent.Nil() {
			logrus.WithField("surface", xdgSurface).Errorln("xdgSurface popup parent is nil")
			return
		}
		xdgSurface.SetData(parent.XDGSurface().SceneTree().NewXDGSurface(xdgSurface))
		return
	}
	if xdgSurface.Role() != wlroots.XDGSurfaceRoleTopLevel {
		logrus.WithFields(logrus.Fields{
			"surface": xdgSurface,
			"role":    xdgSurface.Role(),
		}).Warnln("Ignoring xdgSurface without a known role")
		return
	}

	// Hidden until the draw order says otherwise
	tree := server.scene.Tree().NewXDGSurface(xdgSurface.TopLevel().Base())
	tree.Node().SetEnabled(false)
	xdgSurface.SetData(tree)

	// The identity is kept from here on, the wlr_surface may already be
	// gone by the time the destroy signal fires
	surface := xdgSurface.Surface()
	server.notify(events.SurfaceCreated[wlroots.Surface]{Identity: surface})
	server.notify(events.ExtensionShellSurfaceCreated[wlroots.Surface]{Surface: surface, Extension: xdgSurface})

	xdgSurface.OnMap(server.handleMapXDGToplevel)
	xdgSurface.OnDestroy(func(wlroots.XDGSurface) {
		server.notify(events.SurfaceDestroyed[wlroots.Surface]{Identity: surface})
	})
}

func (server *Server) handleMapXDGToplevel(xdgSurface wlroots.XDGSurface) {
	/* Called when the surface is mapped, or ready to display on-screen. */
	surface := xdgSurface.Surface()
	server.focusTopLevel(xdgSurface.TopLevel(), surface)
}

func (server *Server) focusTopLevel(topLevel wlroots.XDGTopLevel, surface wlroots.Surface) {
	/* Note: this function only deals with keyboard focus. */
	prevSurface := server.seat.KeyboardState().FocusedSurface()
	if prevSurface == surface {
		/* Don't re-focus an already focused surface. */
		return
	}
	if !prevSurface.Nil() {
		prevTopLevel, err := prevSurface.XDGTopLevel()
		if err == nil {
			prevTopLevel.SetActivated(false)
		}
	}

	// Stacking follows the draw order, restack applies the raise
	if _, ok := server.compositor.Lookup(surface); ok {
		if err := server.compositor.Raise(surface); err != nil {
			logrus.WithError(err).Debugln("focusTopLevel")
		}
	}
	topLevel.SetActivated(true)
	server.seat.NotifyKeyboardEnter(topLevel.Base().Surface(), server.seat.Keyboard())
}

func (server *Server) handleSetCursorRequest(client wlroots.SeatClient, surface wlroots.Surface, _ uint32, hotspotX int32, hotspotY int32) {
	/* This event is raised by the seat when a client provides a cursor image */
	focusedClient := server.seat.PointerState().FocusedClient()
	if focusedClient != client {
		return
	}
	server.cursor.SetSurface(surface, hotspotX, hotspotY)

	ns, added := server.cursorImage.Set(surface, surface.Nil())
	for _, n := range ns {
		server.notify(n)
	}
	if !added {
		return
	}
	surface.OnDestroy(func(wlroots.Surface) {
		for _, n := range server.cursorImage.Destroyed(surface) {
			server.notify(n)
		}
	})
}

// xdgScene applies the draw order to the scene trees of xdg toplevels.
// Items without one, cursor surfaces for example, are left alone.
type xdgScene struct{}

func (xdgScene) SetVisible(item *surface.Item[wlroots.Surface], visible bool) {
	if xdgSurface, ok := item.Shell().Extension.(wlroots.XDGSurface); ok {
		xdgSurface.SceneTree().Node().SetEnabled(visible)
	}
}

func (xdgScene) RaiseToTop(item *surface.Item[wlroots.Surface]) {
	if xdgSurface, ok := item.Shell().Extension.(wlroots.XDGSurface); ok {
		xdgSurface.SceneTree().Node().RaiseToTop()
	}
}

// restack brings the scene graph in line with the compositor's draw order.
// Changed nodes damage their outputs, which gets wlroots to schedule the
// frames.
func (server *Server) restack() {
	visible := server.compositor.Restack(server.window, xdgScene{})
	logrus.WithField("visible", visible).Debugln("Scene restacked")
}

func (server *Server) handleNewFrame(wout wlroots.Output) {
	/* This function is called every time an output is ready to display a frame,
	 * generally at the output's refresh rate (e.g. 60Hz). */

	sOut, err := server.scene.SceneOutput(wout)
	if err != nil {
		return
	}

	/* Render the scene if needed and commit the output */
	sOut.Commit()
	sOut.SendFrameDone(time.Now())
}

func (server *Server) handleOutputRequestState(wout wlroots.Output, state wlroots.OutputState) {
	/* This function is called when the backend requests a new state for
	 * the output. For example, Wayland and X11 backends request a new mode
	 * when the output window is resized. */
	logrus.WithFields(logrus.Fields{
		"output": wout.Name(),
	}).Debugln("New state request for output")
	wout.CommitState(state)
}

func (server *Server) handleOutputDestroy(wout wlroots.Output) {
	logrus.WithField("name", wout.Name()).Debugln("Output getting destroyed")
}

// setOutputMode picks the mode matching the configured size, falling
// back to the output's preferred mode.
func (server *Server) setOutputMode(wout wlroots.Output, oState wlroots.OutputState) {
	for _, mode := range wout.Modes() {
		if int(mode.Width()) == server.conf.Output.Width && int(mode.Height()) == server.conf.Output.Height {
			oState.SetMode(mode)
			return
		}
	}
	if mode, err := wout.PrefferedMode(); err == nil {
		oState.SetMode(mode)
	}
}

func (server *Server) handleNewOutput(wout wlroots.Output) {
	/* This event is raised by the backend when a new output (aka a display or
	 * monitor) becomes available. */

	logrus.WithField("name", wout.Name()).Debugln("New output added")
	server.outputs = append(server.outputs, &wout)

	/* Configures the output created by the backend to use our allocator
	 * and our renderer. Must be done once, before commiting the output */
	wout.InitRender(server.allocator, server.renderer)

	oState := wlroots.NewOutputState()
	oState.StateInit()
	oState.StateSetEnabled(true)
	server.setOutputMode(wout, oState)
	wout.CommitState(oState)
	oState.Finish()

	wout.OnFrame(server.handleNewFrame)
	wout.OnRequestState(server.handleOutputRequestState)
	wout.OnDestroy(server.handleOutputDestroy)

	lOutput := server.outputLayout.AddOutputAuto(wout)
	sceneOutput := server.scene.NewOutput(wout)
	server.sceneLayout.AddOutput(lOutput, sceneOutput)

	// The first output becomes the window's default output
	if _, ok := server.window.Output(); !ok {
		out := output.FromConfig(server.conf.Output)
		out.Name = wout.Name()
		server.window.SetOutput(out)
		server.compositor.MapPending()
	}

	err := wout.SetTitle(fmt.Sprintf("budgie-rd - %s", wout.Name()))
	if err != nil {
		logrus.WithError(err).WithField("name", wout.Name()).Debugln("Output has no title")
	}
}

func (server *Server) GetOutputs() []*wlroots.Output {
	return server.outputs
}

func NewServer(conf *config.Config) (server *Server, err error) {
	server = &Server{conf: conf}

	server.window = output.NewWindow[wlroots.Surface]()
	// xdg toplevels are the only windows here, unclassified they would
	// never be drawn
	layer, err := conf.ExtensionShellLayerOr(surface.LayerApplication)
	if err != nil {
		return nil, err
	}
	server.compositor = newController[wlroots.Surface](server.window, layer)
	server.queue = events.NewQueue[wlroots.Surface](server.compositor, events.DefaultSize)
	server.redraw, err = server.window.Frames("scene")
	if err != nil {
		return nil, err
	}

	server.display = wlroots.NewDisplay()

	server.backend, err = server.display.BackendAutocreate()
	if err != nil {
		return nil, err
	}

	server.renderer, err = server.backend.RendererAutoCreate()
	if err != nil {
		return nil, err
	}
	server.renderer.InitDisplay(server.display)

	server.allocator, err = server.backend.AllocatorAutocreate(server.renderer)
	if err != nil {
		return nil, err
	}

	server.display.CompositorCreate(5, server.renderer)
	server.display.SubCompositorCreate()
	server.display.DataDeviceManagerCreate()

	server.outputLayout = wlroots.NewOutputLayout()
	server.backend.OnNewOutput(server.handleNewOutput)

	server.scene = wlroots.NewScene()
	server.sceneLayout = server.scene.AttachOutputLayout(server.outputLayout)

	server.xdgShell = server.display.XDGShellCreate(3)
	server.xdgShell.OnNewSurface(server.handleNewXDGSurface)

	server.cursor = wlroots.NewCursor()
	server.cursor.AttachOutputLayout(server.outputLayout)
	server.cursorMgr = wlroots.NewXCursorManager("", 24)

	server.cursor.OnMotion(server.handleCursorMotion)
	server.cursor.OnMotionAbsolute(server.handleCursorMotionAbsolute)
	server.cursor.OnButton(server.handleCursorButton)
	server.cursor.OnAxis(server.handleCursorAxis)
	server.cursor.OnFrame(server.handleCursorFrame)
	server.cursorMgr.Load(1)

	server.backend.OnNewInput(server.handleNewInput)
	server.seat = server.display.SeatCreate("seat0")
	server.seat.OnSetCursorRequest(server.handleSetCursorRequest)

	return
}

func (server *Server) Start() error {
	/* Add a Unix socket to the Wayland display. */
	socket, err := server.display.AddSocketAuto()
	if err != nil {
		server.backend.Destroy()
		return err
	}
	logrus.WithField("socket", socket).Debugln("got wl socket")

	if err = server.backend.Start(); err != nil {
		server.backend.Destroy()
		server.display.Destroy()
		return err
	}

	if res := os.Getenv("WAYLAND_DISPLAY"); res != "" {
		logrus.WithField("WAYLAND_DISPLAY", res).Debugln("Wayland display already set, overwriting")
	}
	if err = os.Setenv("WAYLAND_DISPLAY", socket); err != nil {
		return err
	}

	logrus.WithField("WAYLAND_DISPLAY", socket).Infoln("Running Wayland compositor")
	return nil
}

func (server *Server) Run() error {
	/* Run the Wayland event loop. This does not return until you exit the
	 * compositor. Between dispatches the loop serves the notification
	 * queue, so other goroutines are heard even while no frames come. */
	evl := server.display.EventLoop()
	for !server.stopped.Load() {
		server.display.FlushClients()
		evl.Dispatch(dispatchTimeout)
		server.queue.Pump(server.redraw, server.restack)
	}

	server.queue.Close()
	server.window.Close()
	server.display.DestroyClients()
	server.scene.Tree().Node().Destroy()
	server.cursorMgr.Destroy()
	server.outputLayout.Destroy()
	server.display.Destroy()
	return nil
}

// Stop ends Run. It is safe to call from any goroutine.
func (server *Server) Stop() {
	server.stopped.Store(true)
}
