package phys2d

/// Raised on each body owner before a contact between two fixtures is
/// created. Any handler may set Cancelled to veto the pair. Owners are
/// asked in order; once one cancels the remaining owner is not asked.
type PreventCollideEvent struct {
	OurFixture   *Fixture
	OtherFixture *Fixture
	Cancelled    bool
}

/// Raised on a body owner when one of its contacts starts touching.
/// WorldPoint is the first manifold point in world coordinates, or the
/// zero vector for sensor overlaps and empty manifolds.
type StartCollideEvent struct {
	OurFixture   *Fixture
	OtherFixture *Fixture
	WorldPoint   Vec2
}

/// Raised on a body owner when one of its contacts stops touching or is
/// destroyed while touching.
type EndCollideEvent struct {
	OurFixture   *Fixture
	OtherFixture *Fixture
}

type PreventCollideHandler func(e *PreventCollideEvent)
type StartCollideHandler func(e *StartCollideEvent)
type EndCollideHandler func(e *EndCollideEvent)

/// Delivers collision events to handlers subscribed per body. Handlers run
/// on the thread driving the step, in subscription order.
type EventBus struct {
	PreventHandlers map[*Body][]PreventCollideHandler
	StartHandlers   map[*Body][]StartCollideHandler
	EndHandlers     map[*Body][]EndCollideHandler
}

func MakeEventBus() EventBus {
	return EventBus{
		PreventHandlers: make(map[*Body][]PreventCollideHandler),
		StartHandlers:   make(map[*Body][]StartCollideHandler),
		EndHandlers:     make(map[*Body][]EndCollideHandler),
	}
}

func NewEventBus() *EventBus {
	res := MakeEventBus()
	return &res
}

func (bus *EventBus) SubscribePreventCollide(body *Body, handler PreventCollideHandler) {
	bus.PreventHandlers[body] = append(bus.PreventHandlers[body], handler)
}

func (bus *EventBus) SubscribeStartCollide(body *Body, handler StartCollideHandler) {
	bus.StartHandlers[body] = append(bus.StartHandlers[body], handler)
}

func (bus *EventBus) SubscribeEndCollide(body *Body, handler EndCollideHandler) {
	bus.EndHandlers[body] = append(bus.EndHandlers[body], handler)
}

/// Drops every subscription held for the body. Called when a body is
/// destroyed so the bus does not pin it.
func (bus *EventBus) UnsubscribeBody(body *Body) {
	delete(bus.PreventHandlers, body)
	delete(bus.StartHandlers, body)
	delete(bus.EndHandlers, body)
}

func (bus *EventBus) RaisePreventCollide(body *Body, e *PreventCollideEvent) {
	for _, handler := range bus.PreventHandlers[body] {
		handler(e)
	}
}

func (bus *EventBus) RaiseStartCollide(body *Body, e *StartCollideEvent) {
	for _, handler := range bus.StartHandlers[body] {
		handler(e)
	}
}

func (bus *EventBus) RaiseEndCollide(body *Body, e *EndCollideEvent) {
	for _, handler := range bus.EndHandlers[body] {
		handler(e)
	}
}
