package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishProductEvent 发布产品级事件到指定主题（created/updated/delisted 等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishProductEvent(pub message.Publisher, topic string, payload ProductPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// ParseProductEvent 将 Watermill 消息解析为强类型 Envelope（ProductPayload）。
func ParseProductEvent(msg *message.Message) (Message[ProductPayload], error) {
	return ParseWatermillMessage[ProductPayload](msg)
}

// PublishVersionCreated 发布 reg.version.created 事件，通知下游版本已进入流水线。
func PublishVersionCreated(pub message.Publisher, payload VersionCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVersionCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicVersionCreated, msg)
}

// PublishVersionStatusChanged 发布审核流水线状态迁移事件。
// yanked 迁移同时发布到 reg.version.yanked，方便只关心撤回的消费者。
func PublishVersionStatusChanged(pub message.Publisher, payload VersionStatusChangedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicVersionStatusChanged, payload, opts...)
	if err != nil {
		return err
	}

	if err := pub.Publish(TopicVersionStatusChanged, msg); err != nil {
		return err
	}

	if payload.To == "yanked" {
		ymsg, err := NewWatermillMessage(TopicVersionYanked, payload, opts...)
		if err != nil {
			return err
		}

		return pub.Publish(TopicVersionYanked, ymsg)
	}

	return nil
}

// ParseVersionStatusChanged 将 Watermill 消息解析为强类型 Envelope（VersionStatusChangedPayload）。
func ParseVersionStatusChanged(msg *message.Message) (Message[VersionStatusChangedPayload], error) {
	return ParseWatermillMessage[VersionStatusChangedPayload](msg)
}

// PublishAssetEvent 发布素材级事件（upload.initiated / deleted）。
func PublishAssetEvent(pub message.Publisher, topic string, payload AssetPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(topic, msg)
}

// PublishManifestServed 发布 reg.manifest.served 事件，用于下载热点统计。
func PublishManifestServed(pub message.Publisher, payload ManifestServedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicManifestServed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicManifestServed, msg)
}

// ParseManifestServed 将 Watermill 消息解析为强类型 Envelope（ManifestServedPayload）。
func ParseManifestServed(msg *message.Message) (Message[ManifestServedPayload], error) {
	return ParseWatermillMessage[ManifestServedPayload](msg)
}
