package domain

// Provider delivery-notification event types, as published by SES.
const (
	DeliveryEventBounce    = "Bounce"
	DeliveryEventComplaint = "Complaint"
	DeliveryEventDelivery  = "Delivery"
	DeliveryEventOpen      = "Open"
	DeliveryEventSend      = "Send"
	DeliveryEventReject    = "Reject"
)

// ClientStatusForEvent maps a delivery event type to the recipient status it
// implies. The second return is false for events that are tracked but do not
// move the recipient (Send) and for unknown types.
func ClientStatusForEvent(eventType string) (string, bool) {
	switch eventType {
	case DeliveryEventBounce:
		return ClientStatusBounced, true
	case DeliveryEventComplaint:
		return ClientStatusComplained, true
	case DeliveryEventDelivery:
		return ClientStatusDelivered, true
	case DeliveryEventOpen:
		return ClientStatusOpened, true
	case DeliveryEventReject:
		return ClientStatusFailed, true
	}
	return "", false
}
