package emitter

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"go.uber.org/zap"

	"github.com/pixshare/image-service/log"
)

// KinesisAPI is the subset of the kinesis client used by the emitter.
type KinesisAPI interface {
	PutRecord(input *kinesis.PutRecordInput) (*kinesis.PutRecordOutput, error)
}

// Streams names the four activity streams.
type Streams struct {
	AddLike       string
	RemoveLike    string
	CreateComment string
	RemoveComment string
}

// ActivityEmitter publishes activity events to kinesis, one stream per
// topic. Every event about one user's interaction with one image carries
// the same partition key, so those events stay ordered relative to each
// other. Delivery is fire-and-forget: the outcome is only logged.
type ActivityEmitter struct {
	client  KinesisAPI
	streams Streams
}

func New(client KinesisAPI, streams Streams) *ActivityEmitter {
	return &ActivityEmitter{
		client:  client,
		streams: streams,
	}
}

func (e *ActivityEmitter) SendAddLike(userID, imageID int64) {
	e.send(e.streams.AddLike, partitionKey(userID, imageID), NewLikeEvent(userID, imageID))
}

func (e *ActivityEmitter) SendRemoveLike(userID, imageID int64) {
	e.send(e.streams.RemoveLike, partitionKey(userID, imageID), NewLikeEvent(userID, imageID))
}

func (e *ActivityEmitter) SendCreateComment(userID, imageID, commentID int64, content string) {
	e.send(e.streams.CreateComment, partitionKey(userID, imageID), NewCommentEvent(userID, imageID, commentID, content))
}

func (e *ActivityEmitter) SendRemoveComment(userID, imageID, commentID int64) {
	e.send(e.streams.RemoveComment, partitionKey(userID, imageID), NewCommentEvent(userID, imageID, commentID, ""))
}

// send delivers one event in the background. The triggering operation has
// already succeeded, so a failed put is logged and absorbed.
func (e *ActivityEmitter) send(stream, key string, event interface{}) {
	go func() {
		data, err := json.Marshal(event)
		if err != nil {
			log.Error("fail to marshal activity event", log.SourceEmitter,
				zap.String("stream", stream), zap.Error(err))
			return
		}

		_, err = e.client.PutRecord(&kinesis.PutRecordInput{
			StreamName:   aws.String(stream),
			PartitionKey: aws.String(key),
			Data:         data,
		})
		if err != nil {
			log.Error("fail to put activity event into stream", log.SourceEmitter,
				zap.String("stream", stream), zap.String("partitionKey", key), zap.Error(err))
			return
		}

		log.Debug("activity event sent", log.SourceEmitter,
			zap.String("stream", stream), zap.String("partitionKey", key))
	}()
}

func partitionKey(userID, imageID int64) string {
	return fmt.Sprintf("%d_%d", userID, imageID)
}
