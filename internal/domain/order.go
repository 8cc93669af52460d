package domain

// Status is the lifecycle state of an enquiry or order. The two record kinds
// use disjoint sets of values.
type Status string

const (
	EnquiryRequested  Status = "Requested"
	EnquiryProcessing Status = "Processing"
	EnquiryCompleted  Status = "Completed"
	EnquiryCancelled  Status = "Cancelled"
)

const (
	OrderPending    Status = "pending"
	OrderProcessing Status = "processing"
	OrderShipped    Status = "shipped"
	OrderDelivered  Status = "delivered"
	OrderCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}
