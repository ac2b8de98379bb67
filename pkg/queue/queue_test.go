package queue_test

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/allservices/registry/pkg/queue"
)

// collectPublisher 收集发布调用，用于断言扇出行为.
type collectPublisher struct {
	published map[string][]*message.Message
}

func newCollectPublisher() *collectPublisher {
	return &collectPublisher{published: map[string][]*message.Message{}}
}

func (p *collectPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.published[topic] = append(p.published[topic], msgs...)
	return nil
}

func (p *collectPublisher) Close() error { return nil }

// TestWatermillMessageRoundTrip 消息构造、元数据与强类型解析的往返.
func TestWatermillMessageRoundTrip(t *testing.T) {
	payload := queue.VersionStatusChangedPayload{
		ProductID:     "prod-1",
		VersionID:     "ver-1",
		VersionString: "1.2.3",
		From:          "review_pending",
		To:            "approved",
	}

	msg, err := queue.NewWatermillMessage(queue.TopicVersionStatusChanged, payload,
		queue.WithProducer("registry"), queue.WithTraceID("trace-42"))
	if err != nil {
		t.Fatalf("NewWatermillMessage: %v", err)
	}

	if got := msg.Metadata.Get("topic"); got != queue.TopicVersionStatusChanged {
		t.Errorf("topic metadata = %q", got)
	}

	if got := msg.Metadata.Get("producer"); got != "registry" {
		t.Errorf("producer metadata = %q", got)
	}

	if got := msg.Metadata.Get("trace_id"); got != "trace-42" {
		t.Errorf("trace_id metadata = %q", got)
	}

	env, err := queue.ParseVersionStatusChanged(msg)
	if err != nil {
		t.Fatalf("ParseVersionStatusChanged: %v", err)
	}

	if env.Header.Topic != queue.TopicVersionStatusChanged || env.Header.Version != queue.PayloadVersionV1 {
		t.Errorf("header = %+v", env.Header)
	}

	if env.Payload != payload {
		t.Errorf("payload round trip mismatch: %+v", env.Payload)
	}
}

// TestPublishVersionStatusChangedFansOutYank yanked 迁移同时发布到撤回专题.
func TestPublishVersionStatusChangedFansOutYank(t *testing.T) {
	pub := newCollectPublisher()

	err := queue.PublishVersionStatusChanged(pub, queue.VersionStatusChangedPayload{
		ProductID: "prod-1",
		VersionID: "ver-1",
		From:      "approved",
		To:        "yanked",
	})
	if err != nil {
		t.Fatalf("PublishVersionStatusChanged: %v", err)
	}

	if len(pub.published[queue.TopicVersionStatusChanged]) != 1 {
		t.Error("expected publish on status changed topic")
	}

	if len(pub.published[queue.TopicVersionYanked]) != 1 {
		t.Error("expected fan-out publish on yanked topic")
	}
}

// TestPublishVersionStatusChangedNoFanOut 普通迁移不扇出.
func TestPublishVersionStatusChangedNoFanOut(t *testing.T) {
	pub := newCollectPublisher()

	err := queue.PublishVersionStatusChanged(pub, queue.VersionStatusChangedPayload{
		From: "uploading",
		To:   "processing",
	})
	if err != nil {
		t.Fatalf("PublishVersionStatusChanged: %v", err)
	}

	if len(pub.published[queue.TopicVersionYanked]) != 0 {
		t.Error("non-yank transition must not publish to yanked topic")
	}
}

func TestAllTopicsPrefix(t *testing.T) {
	topics := queue.AllTopics()
	if len(topics) == 0 {
		t.Fatal("AllTopics is empty")
	}

	for _, topic := range topics {
		if len(topic) < 4 || topic[:4] != "reg." {
			t.Errorf("topic %q should carry the reg. prefix", topic)
		}
	}
}
