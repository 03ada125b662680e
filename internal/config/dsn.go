package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

// DSNValue renders the connection string for the configured driver.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.URL); v != "" {
		return v
	}

	switch c.Driver {
	case DriverSQLite:
		if p := strings.TrimSpace(c.Path); p != "" {
			return p
		}
		return defaultSQLitePath
	case DriverPostgres:
		return c.postgresDSN()
	case DriverMongo:
		return c.mongoURI()
	default:
		return c.mysqlDSN()
	}
}

func (c DatabaseRuntimeConfig) hostPort() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultPortForDriver(c.Driver)
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (c DatabaseRuntimeConfig) dbName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(c.DBName); name != "" {
		return name
	}
	return defaultDBName
}

func (c DatabaseRuntimeConfig) userName() string {
	if user := strings.TrimSpace(c.User); user != "" {
		return user
	}
	return strings.TrimSpace(c.Username)
}

func (c DatabaseRuntimeConfig) mysqlDSN() string {
	user := c.userName()
	if user == "" {
		user = defaultDBUser
	}
	password := strings.TrimSpace(c.Password)
	if password == "" {
		password = defaultDBPassword
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	params := encodeParams(c.Params)
	if params.Get("charset") == "" {
		params.Set("charset", charset)
	}
	if params.Get("parseTime") == "" {
		params.Set("parseTime", strconv.FormatBool(c.ParseTime))
	}
	if params.Get("loc") == "" {
		params.Set("loc", loc)
	}

	auth := user
	if password != "" {
		auth += ":" + password
	}
	auth += "@"

	dsn := fmt.Sprintf("%stcp(%s)/%s", auth, c.hostPort(), c.dbName())
	if query := params.Encode(); query != "" {
		dsn += "?" + query
	}
	return dsn
}

func (c DatabaseRuntimeConfig) postgresDSN() string {
	host, port, _ := net.SplitHostPort(c.hostPort())
	parts := []string{
		"host=" + host,
		"port=" + port,
		"dbname=" + c.dbName(),
	}
	if user := c.userName(); user != "" {
		parts = append(parts, "user="+user)
	}
	if password := strings.TrimSpace(c.Password); password != "" {
		parts = append(parts, "password="+password)
	}
	sslmode := strings.TrimSpace(c.SSLMode)
	if sslmode == "" {
		sslmode = "disable"
	}
	parts = append(parts, "sslmode="+sslmode)
	if tz := strings.TrimSpace(c.Params["TimeZone"]); tz != "" {
		parts = append(parts, "TimeZone="+tz)
	}
	return strings.Join(parts, " ")
}

func (c DatabaseRuntimeConfig) mongoURI() string {
	u := &neturl.URL{
		Scheme: "mongodb",
		Host:   c.hostPort(),
		Path:   "/" + c.dbName(),
	}
	user := c.userName()
	password := strings.TrimSpace(c.Password)
	if user != "" {
		if password != "" {
			u.User = neturl.UserPassword(user, password)
		} else {
			u.User = neturl.User(user)
		}
	}
	if params := encodeParams(c.Params); len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

// MongoDatabase is the database name used by the mongo driver.
func (c DatabaseRuntimeConfig) MongoDatabase() string {
	if raw := strings.TrimSpace(c.DSN); raw != "" {
		if u, err := neturl.Parse(raw); err == nil {
			if name := strings.Trim(u.Path, "/"); name != "" {
				return name
			}
		}
	}
	return c.dbName()
}

func encodeParams(in map[string]string) neturl.Values {
	params := neturl.Values{}
	for key, value := range in {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}
	return params
}

func (c RedisRuntimeConfig) URLValue() string {
	if u := normalizeRedisRawURL(c.URL); u != "" {
		return u
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	db := c.DB
	if db < 0 {
		db = defaultRedisDB
	}

	scheme := strings.ToLower(strings.TrimSpace(c.Scheme))
	if scheme == "" {
		if c.TLS {
			scheme = "rediss"
		} else {
			scheme = "redis"
		}
	}
	if scheme != "redis" && scheme != "rediss" {
		scheme = "redis"
	}

	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(db),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	if username != "" {
		if password != "" {
			u.User = neturl.UserPassword(username, password)
		} else {
			u.User = neturl.User(username)
		}
	} else if password != "" {
		u.User = neturl.UserPassword("", password)
	}

	if query := encodeParams(c.Params); len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}
