package core

// Questions offered as suggestions, in display order. Each has a curated answer.
var suggestedQuestions = []string{
	"How can ERP help streamline our business processes?",
	"What are the key modules in a modern ERP system?",
	"How to improve inventory management with ERP?",
}

var curatedResponses = map[string]EnhancedResponse{
	"How can ERP help streamline our business processes?": {
		Content: `ERP systems are powerful tools for streamlining business processes across your organization:

**1. Process Integration & Standardization**
• Unifies disparate business processes into a single, cohesive system
• Standardizes workflows across departments and locations
• Eliminates data silos and reduces manual data entry
• Creates consistent business rules and procedures organization-wide

**2. Real-Time Data & Visibility**
• Provides real-time visibility into all business operations
• Enables data-driven decision making with live dashboards
• Offers comprehensive reporting and analytics capabilities
• Ensures all departments work with the same accurate, up-to-date information

**3. Automation of Routine Tasks**
• Automates repetitive tasks like invoicing, purchase orders, and payroll
• Reduces human error and processing time
• Enables straight-through processing for many transactions
• Frees up staff to focus on strategic, value-added activities

**4. Improved Compliance & Control**
• Built-in compliance features for various regulations (SOX, FDA, etc.)
• Audit trails and version control for all transactions
• Automated approval workflows and segregation of duties
• Enhanced security and access controls

**5. Enhanced Collaboration**
• Facilitates cross-departmental collaboration with shared data
• Improves communication through integrated messaging and notifications
• Enables better coordination between sales, operations, and finance
• Supports mobile access for remote and field workers

**6. Cost Reduction & Efficiency**
• Reduces operational costs through process optimization
• Minimizes duplicate data entry and manual errors
• Optimizes inventory levels and reduces carrying costs
• Improves cash flow through better financial management

The result is a more agile, efficient organization that can respond quickly to market changes and customer demands.`,
		Sources: []Source{
			{
				Title:       "ERP Implementation Best Practices - SharePoint Document",
				URL:         "https://pcsoft.sharepoint.com/sites/documentation/ERP_Implementation_Guide.pdf",
				Description: "Comprehensive guide on ERP implementation strategies and business process optimization",
			},
			{
				Title:       "Business Process Automation with ERP - Internal Knowledge Base",
				URL:         "https://pcsoft.sharepoint.com/sites/kb/Process_Automation_ERP.docx",
				Description: "Internal documentation on automating business processes using ERP systems",
			},
			{
				Title:       "ROI Analysis: ERP Systems - Financial Reports",
				URL:         "https://pcsoft.sharepoint.com/sites/finance/ERP_ROI_Analysis_2024.xlsx",
				Description: "Detailed ROI analysis and cost-benefit calculations for ERP implementations",
			},
		},
		Images: []Image{
			{
				Title:       "ERP Process Flow Diagram",
				Description: "Visual representation of integrated business processes in ERP",
			},
			{
				Title:       "Before/After: Process Optimization",
				Description: "Comparison of business processes before and after ERP implementation",
			},
			{
				Title:       "ERP Dashboard Screenshot",
				Description: "Real-time business intelligence dashboard from ERP system",
			},
		},
	},
	"What are the key modules in a modern ERP system?": {
		Content: `Modern ERP systems typically include these core modules, each designed to manage specific business functions:

**Financial Management Modules:**
• **General Ledger** - Core accounting and financial reporting
• **Accounts Payable/Receivable** - Vendor and customer payment processing
• **Fixed Asset Management** - Asset tracking and depreciation
• **Cash Management** - Cash flow forecasting and bank reconciliation
• **Financial Reporting** - Regulatory compliance and management reporting

**Supply Chain & Operations:**
• **Inventory Management** - Stock tracking, valuation, and optimization
• **Procurement** - Purchase requisitions, POs, and vendor management
• **Production Planning** - MRP, capacity planning, and scheduling
• **Quality Management** - Quality control and compliance tracking
• **Warehouse Management** - Picking, packing, and shipping operations

**Sales & Customer Management:**
• **Customer Relationship Management (CRM)** - Lead and opportunity tracking
• **Sales Order Management** - Quote-to-cash processes
• **Pricing Management** - Dynamic pricing and discount controls
• **Commission Management** - Sales compensation calculations

**Human Resources:**
• **HR Information System (HRIS)** - Employee records and self-service
• **Payroll Management** - Salary processing and tax compliance
• **Time & Attendance** - Time tracking and labor cost allocation
• **Talent Management** - Recruiting, performance, and learning management

**Project & Service Management:**
• **Project Accounting** - Project costing and profitability analysis
• **Resource Management** - Resource allocation and utilization
• **Service Management** - Field service and maintenance scheduling

**Business Intelligence & Analytics:**
• **Reporting & Dashboards** - Real-time KPIs and operational metrics
• **Data Warehousing** - Historical data storage and analysis
• **Advanced Analytics** - Predictive analytics and machine learning

**Modern Add-ons:**
• **Mobile Applications** - iOS/Android apps for field workers
• **IoT Integration** - Sensor data collection and analysis
• **AI/ML Capabilities** - Intelligent automation and insights
• **API Management** - Integration with third-party systems

The modular approach allows organizations to implement what they need now and expand functionality as they grow.`,
		Sources: []Source{
			{
				Title:       "ERP Module Configuration Guide - SharePoint",
				URL:         "https://pcsoft.sharepoint.com/sites/documentation/ERP_Modules_Guide.pdf",
				Description: "Detailed documentation of ERP modules and their configurations",
			},
			{
				Title:       "Module Selection Criteria - Internal Wiki",
				URL:         "https://pcsoft.sharepoint.com/sites/wiki/Module_Selection_Framework.docx",
				Description: "Framework for selecting appropriate ERP modules based on business needs",
			},
		},
		Images: []Image{
			{
				Title:       "ERP Architecture Diagram",
				Description: "Complete system architecture showing all integrated modules",
			},
			{
				Title:       "Module Integration Map",
				Description: "Visual map of how different ERP modules connect and share data",
			},
		},
	},
	"How to improve inventory management with ERP?": {
		Content: `ERP systems transform inventory management through automation, real-time visibility, and intelligent optimization:

**1. Real-Time Inventory Tracking**
• Live inventory counts across all locations and warehouses
• Automatic updates when items are received, moved, or shipped
• Serial number and lot tracking for full traceability
• Integration with barcode scanners and RFID systems
• Multi-location inventory visibility in a single dashboard

**2. Automated Reorder Management**
• Set minimum and maximum stock levels for each item
• Automatic purchase requisition generation when stock hits reorder points
• Seasonal demand planning and safety stock calculations
• Supplier lead time management and delivery scheduling
• Economic Order Quantity (EOQ) optimization

**3. Advanced Demand Forecasting**
• Historical sales data analysis for demand patterns
• Seasonal trend identification and planning
• Integration with sales forecasts and marketing campaigns
• Machine learning algorithms for improved prediction accuracy
• What-if scenarios for demand planning

**4. Cost Management & Optimization**
• Multiple costing methods (FIFO, LIFO, Average, Standard)
• Landed cost calculations including freight and duties
• Inventory valuation reports for financial accuracy
• Slow-moving and obsolete inventory identification
• Carrying cost analysis and optimization recommendations

**5. Warehouse Operations Enhancement**
• Optimized picking routes and warehouse layouts
• Cycle counting programs with ABC analysis
• Put-away strategies for maximum efficiency
• Cross-docking capabilities for fast-moving items
• Integration with warehouse management systems (WMS)

**6. Quality Control Integration**
• Inspection workflows for incoming materials
• Quality holds and quarantine management
• Batch/lot tracking for quality issues and recalls
• Supplier quality ratings and performance tracking
• Certificate of analysis (COA) management

**7. Reporting & Analytics**
• Inventory turnover and aging reports
• Stock-out and overstock analysis
• Supplier performance dashboards
• Inventory accuracy metrics
• Cost variance analysis and reporting

**8. Mobile Capabilities**
• Mobile apps for warehouse staff
• Real-time inventory updates from the floor
• Mobile receiving and shipping confirmations
• Barcode scanning integration
• Remote inventory visibility for managers

**Benefits Achieved:**
• Reduced inventory carrying costs (typically 10-30% reduction)
• Improved inventory accuracy (95%+ accuracy achievable)
• Faster order fulfillment and reduced stockouts
• Better supplier relationships through improved planning
• Enhanced customer satisfaction with better availability

Successful ERP inventory management requires proper setup, staff training, and ongoing optimization based on performance metrics and changing business needs.`,
		Sources: []Source{
			{
				Title:       "Inventory Management Best Practices - SharePoint",
				URL:         "https://pcsoft.sharepoint.com/sites/operations/Inventory_Best_Practices.pdf",
				Description: "Comprehensive guide to inventory management optimization using ERP",
			},
			{
				Title:       "Warehouse Integration Manual - SharePoint",
				URL:         "https://pcsoft.sharepoint.com/sites/documentation/Warehouse_ERP_Integration.docx",
				Description: "Technical documentation for integrating warehouse operations with ERP",
			},
			{
				Title:       "Cost Reduction Case Studies - Internal Reports",
				URL:         "https://pcsoft.sharepoint.com/sites/finance/Inventory_Cost_Reduction_Cases.xlsx",
				Description: "Real case studies showing inventory cost reductions achieved with ERP",
			},
		},
		Images: []Image{
			{
				Title:       "Inventory Dashboard",
				Description: "Real-time inventory levels and alerts dashboard",
			},
			{
				Title:       "Warehouse Layout Optimization",
				Description: "Before and after warehouse layout improvements with ERP",
			},
			{
				Title:       "Mobile Inventory App Interface",
				Description: "Screenshots of mobile inventory management application",
			},
		},
	},
}
