package queue

import "VendorHub/storage/mq"

const (
	EventsExchange = "vendorhub.events"

	VerificationStatusQueue      = "vendorhub.verification.status"
	VerificationStatusRoutingKey = "verification.status"
)

// VerificationStatusTopology 审核状态事件的 exchange 与队列
var VerificationStatusTopology = mq.Topology{
	Exchange:   EventsExchange,
	Queue:      VerificationStatusQueue,
	RoutingKey: VerificationStatusRoutingKey,
}

// DeclareAll 声明所有队列，server 与 worker 启动时各调用一次
func DeclareAll() error {
	return mq.Declare(VerificationStatusTopology)
}
