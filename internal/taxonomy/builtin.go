package taxonomy

// ocsfCore is the OCSF field subset every reference taxonomy shares.
// These are the fields a normalizing parser must emit regardless of
// vendor, and they carry the mandatory flag used for the compliance
// score.
func ocsfCore() Taxonomy {
	return Taxonomy{
		{Name: "time", OCSFCategory: "base", Mandatory: true},
		{Name: "class_uid", OCSFCategory: "classification", Mandatory: true},
		{Name: "class_name", OCSFCategory: "classification", Mandatory: true},
		{Name: "category_uid", OCSFCategory: "classification", Mandatory: true},
		{Name: "category_name", OCSFCategory: "classification"},
		{Name: "activity_id", OCSFCategory: "classification", Mandatory: true},
		{Name: "activity_name", OCSFCategory: "classification"},
		{Name: "severity_id", OCSFCategory: "classification", Mandatory: true},
		{Name: "severity", OCSFCategory: "classification"},
		{Name: "status_id", OCSFCategory: "classification"},
		{Name: "status", OCSFCategory: "classification"},
		{Name: "metadata.version", OCSFCategory: "metadata", Mandatory: true},
		{Name: "metadata.product.name", OCSFCategory: "metadata", Mandatory: true},
		{Name: "metadata.product.vendor_name", OCSFCategory: "metadata"},
	}
}

func withVendor(extra ...Field) Taxonomy {
	return append(ocsfCore(), extra...)
}

// Builtin returns the default product set. The set mirrors the
// vendor coverage of the generator fleet; external taxonomy files
// extend or override it via Load.
func Builtin() []*Product {
	return []*Product{
		{
			Name:   "aws_cloudtrail",
			Format: FormatJSON,
			Parser: "marketplace-awscloudtrail-latest",
			Taxonomy: withVendor(
				Field{Name: "actor.user.name", OCSFCategory: "actor", Mandatory: true},
				Field{Name: "actor.user.uid", OCSFCategory: "actor"},
				Field{Name: "actor.session.issuer", OCSFCategory: "actor"},
				Field{Name: "api.operation", OCSFCategory: "api", Mandatory: true},
				Field{Name: "api.service.name", OCSFCategory: "api"},
				Field{Name: "api.response.error", OCSFCategory: "api"},
				Field{Name: "cloud.provider", OCSFCategory: "cloud", Mandatory: true},
				Field{Name: "cloud.region", OCSFCategory: "cloud"},
				Field{Name: "src_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "http_request.user_agent", OCSFCategory: "network"},
			),
		},
		{
			Name:   "crowdstrike_falcon",
			Format: FormatJSON,
			Parser: "crowdstrike_falcon",
			Taxonomy: withVendor(
				Field{Name: "actor.process.name", OCSFCategory: "actor", Mandatory: true},
				Field{Name: "actor.process.cmd_line", OCSFCategory: "actor"},
				Field{Name: "actor.user.name", OCSFCategory: "actor", Mandatory: true},
				Field{Name: "device.hostname", OCSFCategory: "device", Mandatory: true},
				Field{Name: "device.os.name", OCSFCategory: "device"},
				Field{Name: "file.name", OCSFCategory: "file"},
				Field{Name: "file.path", OCSFCategory: "file"},
				Field{Name: "finding.title", OCSFCategory: "finding"},
				Field{Name: "attack_technique_uid", OCSFCategory: "finding"},
				Field{Name: "risk_score", OCSFCategory: "finding"},
			),
		},
		{
			Name:   "okta_authentication",
			Format: FormatJSON,
			Parser: "okta_authentication",
			Taxonomy: withVendor(
				Field{Name: "actor.user.name", OCSFCategory: "actor", Mandatory: true},
				Field{Name: "actor.user.email", OCSFCategory: "actor"},
				Field{Name: "auth_protocol", OCSFCategory: "auth", Mandatory: true},
				Field{Name: "src_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "src_endpoint.location.city", OCSFCategory: "network"},
				Field{Name: "session.uid", OCSFCategory: "session"},
				Field{Name: "http_request.user_agent", OCSFCategory: "network"},
				Field{Name: "status_detail", OCSFCategory: "classification"},
			),
		},
		{
			Name:   "fortinet_fortigate",
			Format: FormatKeyValue,
			Parser: "marketplace-fortinetfortigate-latest",
			Taxonomy: withVendor(
				Field{Name: "src_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "src_endpoint.port", OCSFCategory: "network"},
				Field{Name: "dst_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "dst_endpoint.port", OCSFCategory: "network"},
				Field{Name: "connection_info.protocol_name", OCSFCategory: "network", Mandatory: true},
				Field{Name: "connection_info.direction", OCSFCategory: "network"},
				Field{Name: "traffic.bytes", OCSFCategory: "network"},
				Field{Name: "traffic.packets", OCSFCategory: "network"},
				Field{Name: "policy.name", OCSFCategory: "policy"},
				Field{Name: "device.hostname", OCSFCategory: "device"},
			),
		},
		{
			Name:   "cisco_asa",
			Format: FormatSyslog,
			Parser: "cisco_asa",
			Taxonomy: withVendor(
				Field{Name: "src_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "src_endpoint.port", OCSFCategory: "network"},
				Field{Name: "dst_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "dst_endpoint.port", OCSFCategory: "network"},
				Field{Name: "connection_info.protocol_name", OCSFCategory: "network"},
				Field{Name: "connection_info.boundary", OCSFCategory: "network"},
				Field{Name: "device.hostname", OCSFCategory: "device"},
				Field{Name: "message", OCSFCategory: "base"},
			),
		},
		{
			Name:   "paloalto_firewall",
			Format: FormatCSV,
			Parser: "marketplace-paloaltonetworksfirewall-latest",
			Taxonomy: withVendor(
				Field{Name: "src_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "src_endpoint.port", OCSFCategory: "network"},
				Field{Name: "dst_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "dst_endpoint.port", OCSFCategory: "network"},
				Field{Name: "connection_info.protocol_name", OCSFCategory: "network"},
				Field{Name: "traffic.bytes", OCSFCategory: "network"},
				Field{Name: "policy.name", OCSFCategory: "policy"},
				Field{Name: "app.name", OCSFCategory: "application"},
				Field{Name: "device.hostname", OCSFCategory: "device"},
			),
		},
		{
			Name:   "cisco_umbrella",
			Format: FormatCSV,
			Parser: "marketplace-ciscoumbrella-latest",
			Taxonomy: withVendor(
				Field{Name: "query.hostname", OCSFCategory: "dns", Mandatory: true},
				Field{Name: "query.type", OCSFCategory: "dns"},
				Field{Name: "response_code", OCSFCategory: "dns"},
				Field{Name: "src_endpoint.ip", OCSFCategory: "network", Mandatory: true},
				Field{Name: "dst_endpoint.ip", OCSFCategory: "network"},
				Field{Name: "disposition", OCSFCategory: "security"},
			),
		},
	}
}
