package scan

// Commonly scanned TCP ports and their IANA service names. This is a curated
// subset; tools/update-ports.go writes the complete registry instead.
var knownPorts = map[int]string{
	7:     "echo",
	9:     "discard",
	13:    "daytime",
	19:    "chargen",
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	37:    "time",
	43:    "whois",
	53:    "domain",
	67:    "bootps",
	69:    "tftp",
	70:    "gopher",
	79:    "finger",
	80:    "http",
	88:    "kerberos",
	110:   "pop3",
	111:   "sunrpc",
	113:   "ident",
	119:   "nntp",
	123:   "ntp",
	135:   "epmap",
	137:   "netbios-ns",
	139:   "netbios-ssn",
	143:   "imap",
	161:   "snmp",
	179:   "bgp",
	389:   "ldap",
	443:   "https",
	445:   "microsoft-ds",
	465:   "submissions",
	514:   "shell",
	515:   "printer",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	873:   "rsync",
	993:   "imaps",
	995:   "pop3s",
	1080:  "socks",
	1433:  "ms-sql-s",
	1521:  "ncube-lm",
	1723:  "pptp",
	1883:  "mqtt",
	2049:  "nfs",
	2375:  "docker",
	2376:  "docker-s",
	3306:  "mysql",
	3389:  "ms-wbt-server",
	5060:  "sip",
	5432:  "postgresql",
	5672:  "amqp",
	5900:  "rfb",
	6379:  "redis",
	6443:  "sun-sr-https",
	8000:  "irdmi",
	8008:  "http-alt",
	8080:  "http-alt",
	8443:  "pcsync-https",
	9000:  "cslistener",
	9092:  "XmlIpcRegSvc",
	9200:  "wap-wsp",
	11211: "memcache",
	27017: "mongodb",
}
