package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

func awsCloudTrailEvent() map[string]any {
	eventNames := []string{"ConsoleLogin", "AssumeRole", "GetObject", "PutObject", "RunInstances", "CreateUser"}
	regions := []string{"us-east-1", "us-west-2", "eu-west-1", "ap-southeast-2"}
	user := gofakeit.Username()

	return map[string]any{
		"eventVersion":    "1.08",
		"eventTime":       time.Now().UTC().Format(time.RFC3339),
		"eventSource":     "signin.amazonaws.com",
		"eventName":       eventNames[rand.Intn(len(eventNames))],
		"awsRegion":       regions[rand.Intn(len(regions))],
		"sourceIPAddress": gofakeit.IPv4Address(),
		"userAgent":       gofakeit.UserAgent(),
		"userIdentity": map[string]any{
			"type":        "IAMUser",
			"userName":    user,
			"arn":         fmt.Sprintf("arn:aws:iam::%012d:user/%s", rand.Int63n(1e12), user),
			"accountId":   fmt.Sprintf("%012d", rand.Int63n(1e12)),
			"accessKeyId": "AKIA" + gofakeit.LetterN(16),
		},
		"requestParameters": map[string]any{
			"bucketName": gofakeit.Word() + "-" + gofakeit.Word(),
		},
		"responseElements": map[string]any{
			"ConsoleLogin": []string{"Success", "Failure"}[rand.Intn(2)],
		},
		"eventID":   gofakeit.UUID(),
		"eventType": "AwsApiCall",
	}
}

func crowdstrikeFalconEvent() map[string]any {
	techniques := []string{"T1059.001", "T1047", "T1053.005", "T1547.001"}
	severities := []int{2, 3, 4, 5}

	return map[string]any{
		"event_simpleName":              "ProcessRollup2",
		"name":                          "DetectionSummaryEvent",
		"ComputerName":                  gofakeit.AppName() + "-" + gofakeit.LetterN(4),
		"UserName":                      gofakeit.Username(),
		"CommandLine":                   `powershell.exe -enc ` + gofakeit.LetterN(24),
		"FileName":                      "powershell.exe",
		"FilePath":                      `\Device\HarddiskVolume2\Windows\System32`,
		"MD5String":                     gofakeit.LetterN(32),
		"SeverityName":                  "High",
		"Severity":                      severities[rand.Intn(len(severities))],
		"Technique":                     techniques[rand.Intn(len(techniques))],
		"Tactic":                        "Execution",
		"PatternDispositionDescription": "Detection, process would have been blocked if related policy was enabled.",
		"LocalIP":                       gofakeit.IPv4Address(),
		"MachineDomain":                 gofakeit.DomainName(),
		"timestamp":                     time.Now().UTC().UnixMilli(),
	}
}

func oktaAuthenticationEvent() map[string]any {
	outcomes := []string{"SUCCESS", "FAILURE"}
	user := gofakeit.Username()

	return map[string]any{
		"eventType":      "user.session.start",
		"version":        "0",
		"severity":       "INFO",
		"displayMessage": "User login to Okta",
		"published":      time.Now().UTC().Format(time.RFC3339),
		"actor": map[string]any{
			"id":          "00u" + gofakeit.LetterN(17),
			"type":        "User",
			"alternateId": user + "@" + gofakeit.DomainName(),
			"displayName": gofakeit.Name(),
		},
		"client": map[string]any{
			"userAgent": map[string]any{
				"rawUserAgent": gofakeit.UserAgent(),
				"os":           "Mac OS X",
				"browser":      "CHROME",
			},
			"ipAddress": gofakeit.IPv4Address(),
			"geographicalContext": map[string]any{
				"city":    gofakeit.City(),
				"state":   gofakeit.State(),
				"country": gofakeit.Country(),
			},
		},
		"outcome": map[string]any{
			"result": outcomes[rand.Intn(len(outcomes))],
		},
		"authenticationContext": map[string]any{
			"authenticationProvider": "OKTA_AUTHENTICATION_PROVIDER",
			"externalSessionId":      "102" + gofakeit.LetterN(20),
		},
		"uuid": gofakeit.UUID(),
	}
}

func fortigateLine() string {
	actions := []string{"accept", "deny", "close"}
	protos := []string{"tcp", "udp"}
	now := time.Now()

	return fmt.Sprintf(
		`date=%s time=%s devname="FGT60E" devid="FGT60E4Q16%s" logid="0000000013" type="traffic" subtype="forward" level="notice" srcip=%s srcport=%d srcintf="port1" dstip=%s dstport=%d dstintf="port2" proto=%s action="%s" policyid=%d policyname="%s" sentbyte=%d rcvdbyte=%d sentpkt=%d rcvdpkt=%d duration=%d`,
		now.Format("2006-01-02"), now.Format("15:04:05"),
		gofakeit.DigitN(6),
		gofakeit.IPv4Address(), 1024+rand.Intn(64000),
		gofakeit.IPv4Address(), []int{80, 443, 53, 22, 3389}[rand.Intn(5)],
		protos[rand.Intn(len(protos))],
		actions[rand.Intn(len(actions))],
		1+rand.Intn(200), gofakeit.Word()+"-policy",
		rand.Intn(1_000_000), rand.Intn(10_000_000),
		rand.Intn(1000), rand.Intn(10000), rand.Intn(3600),
	)
}

func ciscoASALine() string {
	now := time.Now()
	return fmt.Sprintf(
		`<134>%s asa-fw01 %%ASA-6-302013: Built inbound TCP connection %d for outside:%s/%d (%s/%d) to inside:%s/%d (%s/%d)`,
		now.Format("Jan _2 15:04:05"),
		rand.Intn(1_000_000),
		gofakeit.IPv4Address(), 1024+rand.Intn(64000),
		gofakeit.IPv4Address(), 1024+rand.Intn(64000),
		gofakeit.IPv4Address(), []int{80, 443, 22}[rand.Intn(3)],
		gofakeit.IPv4Address(), []int{80, 443, 22}[rand.Intn(3)],
	)
}

func paloaltoTrafficLine() string {
	actions := []string{"allow", "deny", "drop"}
	apps := []string{"web-browsing", "ssl", "dns", "ssh"}
	now := time.Now()

	// PAN-OS traffic log: CSV positional fields after the syslog-ish
	// receive time column.
	return fmt.Sprintf(
		`%s,0011%s,TRAFFIC,end,%s,%d,%s,%d,%s,%s,%d,%d,%s`,
		now.Format("2006/01/02 15:04:05"),
		gofakeit.DigitN(8),
		gofakeit.IPv4Address(), 1024+rand.Intn(64000),
		gofakeit.IPv4Address(), []int{80, 443, 53}[rand.Intn(3)],
		apps[rand.Intn(len(apps))],
		actions[rand.Intn(len(actions))],
		rand.Intn(1_000_000), rand.Intn(10_000),
		"pan-fw01",
	)
}

func umbrellaDNSLine() string {
	qtypes := []string{"A", "AAAA", "TXT", "MX"}
	dispositions := []string{"Allowed", "Blocked"}
	now := time.Now()

	return fmt.Sprintf(
		`"%s","%s","%s","%s","%s","%s","%s"`,
		now.UTC().Format("2006-01-02 15:04:05"),
		gofakeit.Username(),
		gofakeit.IPv4Address(),
		gofakeit.IPv4Address(),
		dispositions[rand.Intn(len(dispositions))],
		qtypes[rand.Intn(len(qtypes))],
		gofakeit.DomainName()+".",
	)
}

func genericJSONEvent(product string) map[string]any {
	return map[string]any{
		"product":   product,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"host":      gofakeit.AppName() + "-" + gofakeit.LetterN(4),
		"user":      gofakeit.Username(),
		"src_ip":    gofakeit.IPv4Address(),
		"dst_ip":    gofakeit.IPv4Address(),
		"action":    []string{"allow", "deny"}[rand.Intn(2)],
		"message":   gofakeit.HackerPhrase(),
	}
}

func genericKeyValueLine(product string) string {
	return fmt.Sprintf(
		`ts=%s product=%s host=%s user=%s srcip=%s dstip=%s action=%s`,
		time.Now().UTC().Format(time.RFC3339), product,
		gofakeit.AppName(), gofakeit.Username(),
		gofakeit.IPv4Address(), gofakeit.IPv4Address(),
		[]string{"allow", "deny"}[rand.Intn(2)],
	)
}

func genericSyslogLine(product string) string {
	return fmt.Sprintf(
		`<134>%s %s %s: user=%s src=%s dst=%s action=%s`,
		time.Now().Format("Jan _2 15:04:05"),
		gofakeit.AppName(), product,
		gofakeit.Username(),
		gofakeit.IPv4Address(), gofakeit.IPv4Address(),
		[]string{"allow", "deny"}[rand.Intn(2)],
	)
}

func genericCSVLine(product string) string {
	return fmt.Sprintf(
		`%s,%s,%s,%s,%s,%s`,
		time.Now().UTC().Format("2006-01-02 15:04:05"), product,
		gofakeit.Username(),
		gofakeit.IPv4Address(), gofakeit.IPv4Address(),
		[]string{"allow", "deny"}[rand.Intn(2)],
	)
}
