package main

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bitmark-inc/config-loader"
	imageservice "github.com/pixshare/image-service"
	"github.com/pixshare/image-service/emitter"
	"github.com/pixshare/image-service/externals/authservice"
	"github.com/pixshare/image-service/log"
	"github.com/pixshare/image-service/storage"
)

func main() {
	config.LoadConfig("IMAGE_API")

	environment := viper.GetString("environment")

	if err := log.Initialize(viper.GetString("log.level"), viper.GetBool("debug")); err != nil {
		panic(err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         viper.GetString("sentry.dsn"),
		Environment: environment,
	}); err != nil {
		log.Panic("Sentry initialization failed", zap.Error(err))
	}

	store, err := imageservice.NewPostgresImageStore(viper.GetString("store.dsn"), viper.GetInt("store.log_level"))
	if err != nil {
		log.Panic("fail to initiate image store", zap.Error(err))
	}
	if err := store.AutoMigrate(); err != nil {
		log.Panic("fail to migrate image store", zap.Error(err))
	}

	objects, err := storage.NewMinioObjectStore(
		viper.GetString("s3.endpoint"),
		viper.GetString("s3.access_key_id"),
		viper.GetString("s3.secret_access_key"),
		viper.GetString("s3.bucket"),
		viper.GetString("s3.public_url"),
		viper.GetBool("s3.use_ssl"),
	)
	if err != nil {
		log.Panic("fail to initiate object store", zap.Error(err))
	}

	accounts := authservice.New(viper.GetString("auth.url"), viper.GetString("auth.secret"))

	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(viper.GetString("aws.region")),
	}))
	events := emitter.New(kinesis.New(sess), emitter.Streams{
		AddLike:       viper.GetString("streams.add_like"),
		RemoveLike:    viper.GetString("streams.remove_like"),
		CreateComment: viper.GetString("streams.create_comment"),
		RemoveComment: viper.GetString("streams.remove_comment"),
	})

	service := imageservice.NewImageService(store, objects, accounts, events,
		viper.GetInt64("image.min_bytes"), viper.GetInt64("image.max_bytes"))

	s := NewImageAPIServer(service)
	s.SetupRoute()
	if err := s.Run(viper.GetString("server.port")); err != nil {
		log.Panic("server interrupted", zap.Error(err))
	}
}
