package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tuanhqv123/news-api/config"
	"github.com/tuanhqv123/news-api/internal/infrastructure/supabase"
	"github.com/tuanhqv123/news-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	sbClient    *supabase.Client
	sbAdmin     *supabase.AdminClient
	tokenParser *helpers.TokenParser

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetPGPool(p *pgxpool.Pool)  { pgPool = p }
func GetPGPool() *pgxpool.Pool   { return pgPool }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

func SetSupabase(c *supabase.Client)           { sbClient = c }
func GetSupabase() *supabase.Client            { return sbClient }
func SetSupabaseAdmin(a *supabase.AdminClient) { sbAdmin = a }
func GetSupabaseAdmin() *supabase.AdminClient  { return sbAdmin }
func SetTokenParser(p *helpers.TokenParser)    { tokenParser = p }
func GetTokenParser() *helpers.TokenParser     { return tokenParser }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
